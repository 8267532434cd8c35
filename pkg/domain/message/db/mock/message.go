// this package provide "mock" implementation of database for testing.
package mocks

import (
	"context"
	"errors"

	"github.com/mentorlink/mentorlink/pkg/domain"
	dbmock "github.com/mentorlink/mentorlink/pkg/domain/internal/db/mock"
	kdbmessage "github.com/mentorlink/mentorlink/pkg/domain/message/db"
)

type MessageInterface struct {
	Impl struct {
		Create     func(context.Context, domain.MessageSpec) (domain.ChatMessage, error)
		List       func(context.Context, string, int64, int) ([]domain.ChatMessage, error)
		MarkAsRead func(context.Context, string, string) (domain.ReadStatus, error)
		Edit       func(context.Context, string, string, string) (domain.ChatMessage, error)
	}
	Calls struct {
		Create dbmock.CallLog[domain.MessageSpec]
		List   dbmock.CallLog[struct {
			RoomId   string
			AfterSeq int64
			Limit    int
		}]
		MarkAsRead dbmock.CallLog[struct {
			RoomId string
			UserId string
		}]
		Edit dbmock.CallLog[struct {
			MessageId string
			EditorId  string
			Content   string
		}]
	}
}

func NewMessageInterface() *MessageInterface {
	return &MessageInterface{}
}

var _ kdbmessage.MessageInterface = &MessageInterface{}

func (mi *MessageInterface) Create(
	ctx context.Context, spec domain.MessageSpec,
) (domain.ChatMessage, error) {
	mi.Calls.Create = append(mi.Calls.Create, spec)
	if mi.Impl.Create != nil {
		return mi.Impl.Create(ctx, spec)
	}
	panic(errors.New("it should not be called"))
}

func (mi *MessageInterface) List(
	ctx context.Context, roomId string, afterSeq int64, limit int,
) ([]domain.ChatMessage, error) {
	mi.Calls.List = append(mi.Calls.List, struct {
		RoomId   string
		AfterSeq int64
		Limit    int
	}{
		RoomId: roomId, AfterSeq: afterSeq, Limit: limit,
	})
	if mi.Impl.List != nil {
		return mi.Impl.List(ctx, roomId, afterSeq, limit)
	}
	panic(errors.New("it should not be called"))
}

func (mi *MessageInterface) MarkAsRead(
	ctx context.Context, roomId string, userId string,
) (domain.ReadStatus, error) {
	mi.Calls.MarkAsRead = append(mi.Calls.MarkAsRead, struct {
		RoomId string
		UserId string
	}{
		RoomId: roomId, UserId: userId,
	})
	if mi.Impl.MarkAsRead != nil {
		return mi.Impl.MarkAsRead(ctx, roomId, userId)
	}
	panic(errors.New("it should not be called"))
}

func (mi *MessageInterface) Edit(
	ctx context.Context, messageId string, editorId string, content string,
) (domain.ChatMessage, error) {
	mi.Calls.Edit = append(mi.Calls.Edit, struct {
		MessageId string
		EditorId  string
		Content   string
	}{
		MessageId: messageId, EditorId: editorId, Content: content,
	})
	if mi.Impl.Edit != nil {
		return mi.Impl.Edit(ctx, messageId, editorId, content)
	}
	panic(errors.New("it should not be called"))
}
