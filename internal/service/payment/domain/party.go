// internal/service/payment/domain/party.go
package domain

import (
	"strings"
	"time"

	"github.com/pkg/errors"
)

// AppName 标识这笔支付记录归属的上层应用
type AppName string

const (
	AppEmprende   AppName = "emprende"
	AppFullventas AppName = "fullventas"
)

func ParseAppName(raw string) (AppName, error) {
	switch AppName(strings.ToLower(strings.TrimSpace(raw))) {
	case AppEmprende:
		return AppEmprende, nil
	case AppFullventas:
		return AppFullventas, nil
	default:
		return "", errors.Wrapf(ErrInvalidArgument, "unknown app_name %q", raw)
	}
}

// SubjectType 区分外部表里的用户和客户
type SubjectType string

const (
	SubjectUser   SubjectType = "user"
	SubjectClient SubjectType = "client"
)

func ParseSubjectType(raw string) (SubjectType, error) {
	switch SubjectType(strings.ToLower(strings.TrimSpace(raw))) {
	case SubjectUser:
		return SubjectUser, nil
	case SubjectClient:
		return SubjectClient, nil
	default:
		return "", errors.Wrapf(ErrInvalidArgument, "unknown subject_type %q", raw)
	}
}

// Party 是连接支付记录与外部用户/客户表的中立标识，
// (app_name, subject_type, subject_id) 三元组全局唯一。
type Party struct {
	ID          int64       `json:"id"`
	AppName     AppName     `json:"app_name"`
	SubjectType SubjectType `json:"subject_type"`
	SubjectID   int64       `json:"subject_id"`
	DisplayName string      `json:"display_name,omitempty"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

func NewParty(appName, subjectType string, subjectID int64, displayName string) (*Party, error) {
	app, err := ParseAppName(appName)
	if err != nil {
		return nil, err
	}
	subject, err := ParseSubjectType(subjectType)
	if err != nil {
		return nil, err
	}
	if subjectID <= 0 {
		return nil, errors.Wrap(ErrInvalidArgument, "subject_id must be positive")
	}
	return &Party{
		AppName:     app,
		SubjectType: subject,
		SubjectID:   subjectID,
		DisplayName: strings.TrimSpace(displayName),
	}, nil
}
