package chat

import (
	"time"
)

type Command interface {
	Room() RoomID
}

type SendMessageCommand struct {
	RoomID   RoomID `validate:"required"`
	SenderID UserID `validate:"required"`
	Content  string `validate:"required,max=2000"`
}

func (c SendMessageCommand) Room() RoomID { return c.RoomID }

// MarkReadCommand flags every message of the room not authored by ReaderID.
// A zero UpTo means no cutoff.
type MarkReadCommand struct {
	RoomID   RoomID `validate:"required"`
	ReaderID UserID `validate:"required"`
	UpTo     time.Time
}

func (c MarkReadCommand) Room() RoomID { return c.RoomID }

type OpenRoomCommand struct {
	RoomID   RoomID `validate:"required"`
	CallerID UserID `validate:"required"`
	Limit    int    `validate:"gte=0,lte=500"`
}

func (c OpenRoomCommand) Room() RoomID { return c.RoomID }

// HistoryQuery bounds a one-shot history read the same way a live room is.
type HistoryQuery struct {
	RoomID   RoomID `validate:"required"`
	CallerID UserID `validate:"required"`
	Limit    int    `validate:"gte=0,lte=500"`
}

func (c HistoryQuery) Room() RoomID { return c.RoomID }

type CreateRoomCommand struct {
	Participants []UserID `validate:"len=2,unique,dive,required"`
}
