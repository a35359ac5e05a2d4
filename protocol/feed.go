package protocol

type (
	Feed struct {
		Id           int64  `json:"id"`
		ClubId       int64  `json:"clubId"`
		ClubName     string `json:"clubName"`
		UserId       int64  `json:"userId"`
		UserName     string `json:"userName"`
		Content      string `json:"content"`
		ImageUrls    string `json:"imageUrls"`
		LikeYn       bool   `json:"likeYn"`
		LikesCount   int    `json:"likesCount"`
		CommentCount int    `json:"commentCount"`
		Created      string `json:"created"`
	}

	FeedsResponse struct {
		Response
		Data []Feed `json:"data"`
	}

	// FeedCreation is sent as the feedCreateRequest part of the upload
	FeedCreation struct {
		ClubId  int64  `json:"clubId"`
		Content string `json:"content"`
	}
)
