package event_sub

import "encoding/json"

type EventSubMessage struct {
	Metadata struct {
		MessageType      string `json:"message_type"`
		SubscriptionType string `json:"subscription_type"`
	} `json:"metadata"`
	Payload json.RawMessage `json:"payload"`
}

type SessionWelcomePayload struct {
	Session struct {
		ID string `json:"id"`
	} `json:"session"`
}

type NotificationPayload struct {
	Subscription struct {
		ID   string `json:"id"`
		Type string `json:"type"`
	} `json:"subscription"`
	Event json.RawMessage `json:"event"`
}

type ChatMessageEvent struct {
	MessageID        string `json:"message_id"`
	ChatterUserName  string `json:"chatter_user_name"`
	ChatterUserLogin string `json:"chatter_user_login"`
	Color            string `json:"color"`
	Badges           []struct {
		SetID string `json:"set_id"`
		ID    string `json:"id"`
	} `json:"badges"`
	Message struct {
		Text string `json:"text"`
	} `json:"message"`
}

type RedemptionEvent struct {
	UserName  string `json:"user_name"`
	UserLogin string `json:"user_login"`
	UserInput string `json:"user_input"`
	Reward    struct {
		ID    string `json:"id"`
		Title string `json:"title"`
		Cost  int    `json:"cost"`
	} `json:"reward"`
}
