package session

import "github.com/oklog/ulid/v2"

type NoticeKind string

const (
	NoticeSuccess NoticeKind = "success"
	NoticeError   NoticeKind = "error"
	NoticeInfo    NoticeKind = "info"
)

// Notice is a transient toast shown once to the visitor.
type Notice struct {
	ID      string     `json:"id"`
	Kind    NoticeKind `json:"kind"`
	Message string     `json:"message"`
}

func NewNotice(kind NoticeKind, message string) Notice {
	return Notice{ID: ulid.Make().String(), Kind: kind, Message: message}
}

// maxNotices bounds the queue of a session nobody is reading.
const maxNotices = 20
