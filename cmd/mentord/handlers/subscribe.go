package handlers

import (
	"errors"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	apierr "github.com/mentorlink/mentorlink/pkg/api/types/errors"
	apimessages "github.com/mentorlink/mentorlink/pkg/api/types/messages"
	domerr "github.com/mentorlink/mentorlink/pkg/domain/errors"
	kdbroom "github.com/mentorlink/mentorlink/pkg/domain/room/db"
	"github.com/mentorlink/mentorlink/pkg/hub"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

// GET /api/rooms/:roomId/subscribe?userId=...  (websocket)
//
// Streams committed room events. The stream is lossy under backpressure;
// clients detect gaps by seq and re-sync over the listing endpoint.
func SubscribeRoomHandler(
	dbRoom kdbroom.RoomInterface, h *hub.Hub, roomKey string,
) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		roomId := c.Param(roomKey)
		userId := c.QueryParam("userId")

		summary, err := dbRoom.Get(ctx, roomId)
		if errors.Is(err, domerr.ErrMissing) {
			return apierr.NotFound()
		} else if err != nil {
			return apierr.InternalServerError(err)
		}

		member := false
		for _, p := range summary.Participants {
			if p.UserId == userId && p.IsActive {
				member = true
				break
			}
		}
		if !member {
			return apierr.Forbidden("not an active participant of the room")
		}

		// subscribe before upgrading, so no event published after the
		// handshake is missed.
		sub := h.Subscribe(roomId)
		defer sub.Close()

		conn, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
		if err != nil {
			return err
		}
		defer conn.Close()

		// the read side only notices disconnection.
		gone := make(chan struct{})
		go func() {
			defer close(gone)
			for {
				if _, _, err := conn.ReadMessage(); err != nil {
					return
				}
			}
		}()

		for {
			select {
			case ev, ok := <-sub.Events():
				if !ok {
					return nil
				}
				if err := conn.WriteJSON(apimessages.ComposeEvent(ev)); err != nil {
					return nil
				}
			case <-gone:
				return nil
			case <-ctx.Done():
				return nil
			}
		}
	}
}
