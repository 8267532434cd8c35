package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	apierr "github.com/mentorlink/mentorlink/pkg/api/types/errors"
	apimessages "github.com/mentorlink/mentorlink/pkg/api/types/messages"
	"github.com/mentorlink/mentorlink/pkg/domain"
	domerr "github.com/mentorlink/mentorlink/pkg/domain/errors"
	kdbmessage "github.com/mentorlink/mentorlink/pkg/domain/message/db"
	"github.com/mentorlink/mentorlink/pkg/utils/slices"
)

// Publisher fans committed events out to live subscribers.
type Publisher interface {
	PublishMessage(domain.ChatMessage)
	PublishRead(domain.ReadStatus)
}

// POST /api/rooms/:roomId/messages
//
// Write-then-publish: the message is committed first, and only the
// durable record (server id, seq, timestamp) is published and returned.
func SendMessageHandler(
	dbMessage kdbmessage.MessageInterface, pub Publisher, roomKey string,
) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		roomId := c.Param(roomKey)

		req := apimessages.SendRequest{}
		decoder := json.NewDecoder(c.Request().Body)
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(&req); err != nil {
			return apierr.BadRequest("request body should be JSON", err)
		}

		kind, err := domain.AsMessageKind(req.Kind)
		if err != nil {
			return apierr.BadRequest(`"kind" should be one of text, image or file`, err)
		}
		if req.Content == nil && len(req.Attachments) == 0 {
			return apierr.BadRequest("a message needs content or attachments", nil)
		}

		msg, err := dbMessage.Create(ctx, domain.MessageSpec{
			RoomId:   roomId,
			SenderId: req.SenderId,
			Content:  req.Content,
			Kind:     kind,
			Attachments: slices.Map(
				req.Attachments,
				func(a apimessages.Attachment) domain.AttachmentSpec {
					return domain.AttachmentSpec{
						FileUrl:      a.FileUrl,
						FileName:     a.FileName,
						FileType:     a.FileType,
						ThumbnailUrl: a.ThumbnailUrl,
					}
				},
			),
		})
		switch {
		case err == nil:
			// pass
		case errors.Is(err, domerr.ErrMissing):
			return apierr.NotFound()
		case errors.Is(err, domerr.ErrRoomClosed):
			return apierr.Conflict(err.Error(), apierr.WithError(err))
		case errors.Is(err, domerr.ErrNotAParticipant):
			return apierr.Forbidden(err.Error(), apierr.WithError(err))
		default:
			return apierr.InternalServerError(err)
		}

		pub.PublishMessage(msg)

		detail := apimessages.ComposeDetail(msg)
		detail.TempId = req.TempId
		return c.JSON(http.StatusCreated, detail)
	}
}

// GET /api/rooms/:roomId/messages?after=SEQ&limit=N
func ListMessagesHandler(
	dbMessage kdbmessage.MessageInterface, roomKey string,
) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		roomId := c.Param(roomKey)

		var afterSeq int64
		if after := c.QueryParam("after"); after != "" {
			v, err := strconv.ParseInt(after, 10, 64)
			if err != nil {
				return apierr.BadRequest(`"after" should be an integer seq`, err)
			}
			afterSeq = v
		}
		var limit int
		if l := c.QueryParam("limit"); l != "" {
			v, err := strconv.Atoi(l)
			if err != nil {
				return apierr.BadRequest(`"limit" should be an integer`, err)
			}
			limit = v
		}

		msgs, err := dbMessage.List(ctx, roomId, afterSeq, limit)
		if err != nil {
			return apierr.InternalServerError(err)
		}

		return c.JSON(http.StatusOK, slices.Map(msgs, apimessages.ComposeDetail))
	}
}

// PUT /api/rooms/:roomId/read
func MarkAsReadHandler(
	dbMessage kdbmessage.MessageInterface, pub Publisher, roomKey string,
) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		roomId := c.Param(roomKey)

		req := apimessages.MarkAsReadRequest{}
		decoder := json.NewDecoder(c.Request().Body)
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(&req); err != nil {
			return apierr.BadRequest("request body should be JSON with userId", err)
		}

		status, err := dbMessage.MarkAsRead(ctx, roomId, req.UserId)
		if errors.Is(err, domerr.ErrNotAParticipant) {
			return apierr.Forbidden(err.Error(), apierr.WithError(err))
		} else if err != nil {
			return apierr.InternalServerError(err)
		}

		pub.PublishRead(status)

		return c.JSON(http.StatusOK, apimessages.ComposeReadStatus(status))
	}
}

// PUT /api/messages/:messageId
func EditMessageHandler(
	dbMessage kdbmessage.MessageInterface, pub Publisher, messageKey string,
) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		messageId := c.Param(messageKey)

		req := apimessages.EditRequest{}
		decoder := json.NewDecoder(c.Request().Body)
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(&req); err != nil {
			return apierr.BadRequest("request body should be JSON with editorId and content", err)
		}

		msg, err := dbMessage.Edit(ctx, messageId, req.EditorId, req.Content)
		switch {
		case err == nil:
			// pass
		case errors.Is(err, domerr.ErrMissing):
			return apierr.NotFound()
		case errors.Is(err, domerr.ErrNotSender):
			return apierr.Forbidden(err.Error(), apierr.WithError(err))
		default:
			return apierr.InternalServerError(err)
		}

		// edits replay the message id with the new content.
		pub.PublishMessage(msg)

		return c.JSON(http.StatusOK, apimessages.ComposeDetail(msg))
	}
}
