// internal/service/coupon/domain/alliance.go
package domain

import (
	"strings"
	"time"

	"github.com/pkg/errors"
)

// AllianceStatus 定义商家联盟请求的状态机
type AllianceStatus string

const (
	AlliancePending   AllianceStatus = "PENDING"
	AllianceAccepted  AllianceStatus = "ACCEPTED"
	AllianceRejected  AllianceStatus = "REJECTED"
	AllianceCanceled  AllianceStatus = "CANCELED"
	AllianceSuspended AllianceStatus = "SUSPENDED"
)

// Alliance 是两个商家之间的联盟关系。
// 状态转换受角色约束：接收方决定接受/拒绝，发起方可撤销，
// 双方任意一方可暂停或恢复。
type Alliance struct {
	ID                  int64
	RequesterBusinessID int64
	ReceiverBusinessID  int64
	Status              AllianceStatus
	Reason              string
	RequestedAt         time.Time
	RespondedAt         *time.Time
}

// NewAlliance 创建一个处于 PENDING 状态的联盟请求
func NewAlliance(requesterBusinessID, receiverBusinessID int64, reason string) (*Alliance, error) {
	switch {
	case requesterBusinessID <= 0:
		return nil, errors.Wrap(ErrInvalidArgument, "requester_business_id must be positive")
	case receiverBusinessID <= 0:
		return nil, errors.Wrap(ErrInvalidArgument, "receiver_business_id must be positive")
	case requesterBusinessID == receiverBusinessID:
		return nil, errors.Wrap(ErrInvalidArgument, "a business cannot request an alliance with itself")
	}
	return &Alliance{
		RequesterBusinessID: requesterBusinessID,
		ReceiverBusinessID:  receiverBusinessID,
		Status:              AlliancePending,
		Reason:              strings.TrimSpace(reason),
	}, nil
}

// involves 判断某个商家是否是联盟的一方
func (a *Alliance) involves(businessID int64) bool {
	return businessID == a.RequesterBusinessID || businessID == a.ReceiverBusinessID
}

func (a *Alliance) respond(now time.Time, status AllianceStatus) {
	a.Status = status
	a.RespondedAt = &now
}

// Accept 接收方从 PENDING 接受联盟
func (a *Alliance) Accept(actorBusinessID int64, now time.Time) error {
	if actorBusinessID != a.ReceiverBusinessID {
		return errors.Wrap(ErrForbidden, "only the receiver can accept an alliance")
	}
	if a.Status != AlliancePending {
		return errors.Wrapf(ErrForbidden, "alliance is %s, only PENDING can be accepted", a.Status)
	}
	a.respond(now, AllianceAccepted)
	return nil
}

// Reject 接收方从 PENDING 拒绝联盟
func (a *Alliance) Reject(actorBusinessID int64, now time.Time) error {
	if actorBusinessID != a.ReceiverBusinessID {
		return errors.Wrap(ErrForbidden, "only the receiver can reject an alliance")
	}
	if a.Status != AlliancePending {
		return errors.Wrapf(ErrForbidden, "alliance is %s, only PENDING can be rejected", a.Status)
	}
	a.respond(now, AllianceRejected)
	return nil
}

// Cancel 发起方在对方响应前撤销请求
func (a *Alliance) Cancel(actorBusinessID int64, now time.Time) error {
	if actorBusinessID != a.RequesterBusinessID {
		return errors.Wrap(ErrForbidden, "only the requester can cancel an alliance")
	}
	if a.Status != AlliancePending {
		return errors.Wrapf(ErrForbidden, "alliance is %s, only PENDING can be canceled", a.Status)
	}
	a.respond(now, AllianceCanceled)
	return nil
}

// Suspend 任意一方暂停一个已接受的联盟
func (a *Alliance) Suspend(actorBusinessID int64, now time.Time) error {
	if !a.involves(actorBusinessID) {
		return errors.Wrap(ErrForbidden, "actor is not part of this alliance")
	}
	if a.Status != AllianceAccepted {
		return errors.Wrapf(ErrForbidden, "alliance is %s, only ACCEPTED can be suspended", a.Status)
	}
	a.respond(now, AllianceSuspended)
	return nil
}

// Reactivate 任意一方恢复一个已暂停的联盟
func (a *Alliance) Reactivate(actorBusinessID int64, now time.Time) error {
	if !a.involves(actorBusinessID) {
		return errors.Wrap(ErrForbidden, "actor is not part of this alliance")
	}
	if a.Status != AllianceSuspended {
		return errors.Wrapf(ErrForbidden, "alliance is %s, only SUSPENDED can be reactivated", a.Status)
	}
	a.respond(now, AllianceAccepted)
	return nil
}

// UpdateReason 任意一方更新联盟备注
func (a *Alliance) UpdateReason(actorBusinessID int64, reason string) error {
	if !a.involves(actorBusinessID) {
		return errors.Wrap(ErrForbidden, "actor is not part of this alliance")
	}
	a.Reason = strings.TrimSpace(reason)
	return nil
}
