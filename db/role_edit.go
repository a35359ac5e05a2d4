package db

import (
	"time"

	"github.com/go-xorm/xorm"
	"github.com/lonng/onyou/db/model"
	"github.com/lonng/onyou/pkg/roster"
	"github.com/lonng/onyou/protocol"
	"github.com/pborman/uuid"
	"github.com/pkg/errors"
)

// StageRoleEdit records the pending role of a member. A change back to the
// committed role deletes the record. Edits of one club share a batch id
// until they are cleared, staging any of them makes the whole batch
// pending again.
func StageRoleEdit(clubId int64, change roster.Change) error {
	session := database.NewSession()
	defer session.Close()

	if err := session.Begin(); err != nil {
		return err
	}

	edit := &model.RoleEdit{ClubId: clubId, MemberId: change.MemberId}
	has, err := session.Get(edit)
	if err != nil {
		session.Rollback()
		return err
	}

	if change.From == change.To {
		if has {
			if _, err := session.ID(edit.Id).Delete(&model.RoleEdit{}); err != nil {
				session.Rollback()
				return err
			}
		}
		if err := retryBatch(session, clubId); err != nil {
			session.Rollback()
			return err
		}
		return session.Commit()
	}

	if !has {
		batch, err := batchOf(session, clubId)
		if err != nil {
			session.Rollback()
			return err
		}
		edit.BatchId = batch
	}
	edit.FromRole = change.From.String()
	edit.ToRole = change.To.String()
	edit.Status = RoleEditStatusPending
	edit.UpdatedAt = time.Now().Unix()

	if has {
		_, err = session.ID(edit.Id).Cols("from_role", "to_role", "status", "updated_at").Update(edit)
	} else {
		_, err = session.Insert(edit)
	}
	if err == nil {
		err = retryBatch(session, clubId)
	}
	if err != nil {
		session.Rollback()
		return err
	}
	return session.Commit()
}

func retryBatch(session *xorm.Session, clubId int64) error {
	_, err := session.Where("club_id=? AND status=?", clubId, RoleEditStatusFailed).
		Cols("status").
		Update(&model.RoleEdit{Status: RoleEditStatusPending})
	return err
}

func batchOf(session *xorm.Session, clubId int64) (string, error) {
	edit := &model.RoleEdit{}
	has, err := session.Where("club_id=?", clubId).Get(edit)
	if err != nil {
		return "", err
	}
	if has && edit.BatchId != "" {
		return edit.BatchId, nil
	}
	return uuid.New(), nil
}

// RoleEdits returns the staged edits of a club ordered by member
func RoleEdits(clubId int64) ([]model.RoleEdit, error) {
	list := []model.RoleEdit{}
	if err := database.Where("club_id=?", clubId).Asc("member_id").Find(&list); err != nil {
		return nil, err
	}
	return list, nil
}

func ClearRoleEdits(clubId int64) error {
	_, err := database.Where("club_id=?", clubId).Delete(&model.RoleEdit{})
	return err
}

// MarkRoleEditsFailed flags every staged edit of a club after a rejected save
func MarkRoleEditsFailed(clubId int64) error {
	edit := &model.RoleEdit{
		Status:    RoleEditStatusFailed,
		UpdatedAt: time.Now().Unix(),
	}
	_, err := database.Where("club_id=?", clubId).Cols("status", "updated_at").Update(edit)
	return err
}

// RoleEditStore keeps staged role edits in the database
type RoleEditStore struct{}

func (RoleEditStore) Stage(clubId int64, change roster.Change) error {
	return errors.Wrapf(StageRoleEdit(clubId, change), "stage role edit of member %d", change.MemberId)
}

func (RoleEditStore) Pending(clubId int64) ([]roster.Change, error) {
	edits, err := RoleEdits(clubId)
	if err != nil {
		return nil, errors.Wrapf(err, "role edits of club %d", clubId)
	}

	changes := make([]roster.Change, 0, len(edits))
	for _, e := range edits {
		from, ok1 := protocol.ParseRole(e.FromRole)
		to, ok2 := protocol.ParseRole(e.ToRole)
		if !ok1 || !ok2 {
			logger.Warnf("skip role edit %d with roles %q -> %q", e.Id, e.FromRole, e.ToRole)
			continue
		}
		changes = append(changes, roster.Change{
			MemberId: e.MemberId,
			From:     from,
			To:       to,
			Failed:   e.Status == RoleEditStatusFailed,
		})
	}
	return changes, nil
}

func (RoleEditStore) Clear(clubId int64) error {
	return errors.Wrapf(ClearRoleEdits(clubId), "clear role edits of club %d", clubId)
}

func (RoleEditStore) MarkFailed(clubId int64) error {
	return errors.Wrapf(MarkRoleEditsFailed(clubId), "mark role edits of club %d", clubId)
}
