package lsp

// https://microsoft.github.io/language-server-protocol/specifications/lsp/3.17/specification/#cancelRequest
type CancelRequestNotification struct {
	Notification
	Params CancelParams `json:"params"`
}

type CancelParams struct {
	ID int `json:"id"`
}
