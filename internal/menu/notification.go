package menu

import "encoding/json"

// Kind names an outbound notification; it doubles as the endpoint path.
type Kind string

const (
	KindClose        Kind = "close"
	KindSubmenuOpen  Kind = "submenuOpen"
	KindSubmenuClose Kind = "submenuClose"
	KindSelect       Kind = "select"
	KindCheck        Kind = "check"
)

// Notification is a fire-and-forget message for the host.
type Notification struct {
	Kind    Kind
	Payload any
}

// SelectPayload is sent when a leaf entry is clicked.
type SelectPayload struct {
	ID          ID     `json:"id"`
	Name        string `json:"name"`
	Label       string `json:"label"`
	ShouldClose bool   `json:"shouldClose"`
}

// CheckPayload is sent when a checkbox entry is toggled.
type CheckPayload struct {
	ID      ID     `json:"id"`
	Name    string `json:"name"`
	Label   string `json:"label"`
	Checked bool   `json:"checked"`
}

type emptyPayload struct{}

func CloseNotification() Notification {
	return Notification{Kind: KindClose, Payload: emptyPayload{}}
}

func SubmenuOpenNotification() Notification {
	return Notification{Kind: KindSubmenuOpen, Payload: emptyPayload{}}
}

func SubmenuCloseNotification() Notification {
	return Notification{Kind: KindSubmenuClose, Payload: emptyPayload{}}
}

func SelectNotification(e Entry) Notification {
	return Notification{Kind: KindSelect, Payload: SelectPayload{
		ID:          e.ID,
		Name:        e.Name,
		Label:       e.Label,
		ShouldClose: e.ShouldClose,
	}}
}

func CheckNotification(e Entry) Notification {
	return Notification{Kind: KindCheck, Payload: CheckPayload{
		ID:      e.ID,
		Name:    e.Name,
		Label:   e.Label,
		Checked: e.Checked,
	}}
}

// Body encodes the payload as the JSON request body.
func (n Notification) Body() ([]byte, error) {
	if n.Payload == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(n.Payload)
}
