package domain

// Message is one turn of a transcript. It is never edited once appended.
type Message struct {
	Role Role
	Text string
}

// Session is a conversation transcript. Messages are kept in the order
// they were appended.
type Session struct {
	ID        SessionID
	CreatedAt Timestamp
	Messages  []Message
}

// Clone returns a copy that does not share the message slice.
func (s Session) Clone() Session {
	out := s
	out.Messages = append([]Message(nil), s.Messages...)
	return out
}

// Last returns the most recent message, if any.
func (s Session) Last() (Message, bool) {
	if len(s.Messages) == 0 {
		return Message{}, false
	}
	return s.Messages[len(s.Messages)-1], true
}
