package models

import "time"

// ChatRole identifies the author of a chat turn.
type ChatRole string

const (
	RoleUser  ChatRole = "user"
	RoleModel ChatRole = "model"
)

// ChatSource is a grounding reference returned by the language model.
type ChatSource struct {
	URI   string `json:"uri,omitempty"`
	Title string `json:"title,omitempty"`
}

// ChatMessage is one turn of a Q&A conversation.
type ChatMessage struct {
	Role    ChatRole     `json:"role"`
	Text    string       `json:"text"`
	Sources []ChatSource `json:"sources,omitempty"`
	At      time.Time    `json:"at"`
}

// ChatPrompt is what a language model transport receives for one question.
type ChatPrompt struct {
	System  string
	Prompt  string
	History []ChatMessage
}

// ChatReply is the answer produced by a language model transport.
type ChatReply struct {
	Text    string
	Sources []ChatSource
}
