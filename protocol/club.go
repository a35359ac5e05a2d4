package protocol

import (
	"net/url"
	"strconv"

	"github.com/lonng/onyou/pkg/algoutil"
)

const (
	ApplyStatusApplied  = "APPLIED"
	ApplyStatusApproved = "APPROVED"
)

const (
	SortNew    = "NEW"
	SortOld    = "OLD"
	SortMember = "MEMBER"
)

type (
	Club struct {
		Id               int64  `json:"id"`
		Name             string `json:"name"`
		Thumbnail        string `json:"thumbnail,omitempty"`
		ClubShortDesc    string `json:"clubShortDesc"`
		ClubLongDesc     string `json:"clubLongDesc,omitempty"`
		OrganizationName string `json:"organizationName,omitempty"`
		CreatorName      string `json:"creatorName,omitempty"`
		RecruitStatus    string `json:"recruitStatus,omitempty"`
		MaxNumber        int    `json:"maxNumber"`
		RecruitNumber    int    `json:"recruitNumber"`
		CustomCursor     string `json:"customCursor,omitempty"`
	}

	ClubListPage struct {
		Status    int  `json:"status"`
		HasNext   bool `json:"hasNext"`
		Responses struct {
			Content []Club `json:"content"`
		} `json:"responses"`
	}

	ClubDetail struct {
		Club
		Members []Member `json:"members"`
	}

	ClubDetailResponse struct {
		Response
		Data ClubDetail `json:"data"`
	}

	// ClubRole is the caller's relation to a club. Role is kept raw, an
	// empty role means the caller is not a member.
	ClubRole struct {
		Role        string `json:"role"`
		ApplyStatus string `json:"applyStatus"`
	}

	ClubRoleResponse struct {
		Response
		Data ClubRole `json:"data"`
	}

	ApplyClubRequest struct {
		ClubId int64  `json:"clubId"`
		Memo   string `json:"memo"`
	}

	UpdateClubRequest struct {
		ClubShortDesc string `json:"clubShortDesc"`
		ClubLongDesc  string `json:"clubLongDesc"`
	}

	UpdateClubResponse struct {
		Response
		Data Club `json:"data"`
	}

	// ClubsParams filters a club listing, nil fields are not sent
	ClubsParams struct {
		CategoryId     *int64
		ClubState      *int
		MinMember      *int
		MaxMember      *int
		ShowRecruiting *int
		ShowMy         *int
		Sort           string
	}
)

// Items of the page, a nil page has none
func (p *ClubListPage) Items() []Club {
	if p == nil {
		return nil
	}
	return p.Responses.Content
}

// Member reports whether the caller belongs to the club in any role
func (r ClubRole) Member() bool {
	return r.Role != ""
}

func (r ClubRole) Applied() bool {
	return r.ApplyStatus == ApplyStatusApplied
}

// Values encodes the params as query values
func (p ClubsParams) Values() url.Values {
	v := url.Values{}
	if p.CategoryId != nil {
		v.Set("categoryId", strconv.FormatInt(*p.CategoryId, 10))
	}
	setInt := func(key string, i *int) {
		if i != nil {
			v.Set(key, strconv.Itoa(*i))
		}
	}
	setInt("clubState", p.ClubState)
	setInt("minMember", p.MinMember)
	setInt("maxMember", p.MaxMember)
	setInt("showRecruiting", p.ShowRecruiting)
	setInt("showMy", p.ShowMy)
	if p.Sort != "" {
		v.Set("sort", p.Sort)
	}
	return v
}

// Key is a canonical form of the params, two params that select the same
// listing have the same key
func (p ClubsParams) Key() string {
	return algoutil.SortParams(algoutil.Flatten(p.Values()))
}

func Int(i int) *int { return &i }

func Int64(i int64) *int64 { return &i }
