package api

// Role of a chat message.
type Role string

// Chat message roles emitted by the backend.
const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleTool      Role = "tool"
)

// Trip is a trip as held by the backend.
type Trip struct {
	ID          int64  `json:"id"`
	UserID      string `json:"user_id,omitempty"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
	CreatedAt   string `json:"created_at,omitempty"`
}

// Item is a packing-list item. ID is 0 for items that have not been
// persisted yet (drafts created locally or by the assistant).
type Item struct {
	ID        int64  `json:"id,omitempty"`
	TripID    int64  `json:"trip_id,omitempty"`
	Name      string `json:"name"`
	Quantity  int    `json:"quantity"`
	Notes     string `json:"notes,omitempty"`
	Packed    bool   `json:"is_packed,omitempty"`
	Returning bool   `json:"is_returning,omitempty"`
	CreatedAt string `json:"created_at,omitempty"`
}

// ChatMessage is one turn entry in the assistant conversation.
type ChatMessage struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// StreamEvent is a single server-sent assistant event. Trip and PackingList
// are only meaningful on tool events; a nil field means the payload omitted
// it. Done marks the terminal event of a turn.
type StreamEvent struct {
	Message     ChatMessage `json:"message"`
	Trip        *Trip       `json:"trip,omitempty"`
	PackingList []Item      `json:"packing_list,omitempty"`
	Done        bool        `json:"done,omitempty"`
}

// TripRequest is the body for trip creation and update.
type TripRequest struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
}

// ItemRequest is the body for item creation and update.
type ItemRequest struct {
	TripID    int64  `json:"trip_id"`
	Name      string `json:"name"`
	Quantity  int    `json:"quantity"`
	Notes     string `json:"notes,omitempty"`
	Packed    bool   `json:"is_packed"`
	Returning bool   `json:"is_returning,omitempty"`
}

// TurnRequest starts an assistant turn. Trip and PackingList carry the
// current draft so the assistant works from what the user is looking at.
type TurnRequest struct {
	Message     string `json:"message"`
	Trip        Trip   `json:"trip"`
	PackingList []Item `json:"packing_list"`
}

// ChangesRequest submits the full draft as the new authoritative state.
type ChangesRequest struct {
	Trip        Trip   `json:"trip"`
	PackingList []Item `json:"packing_list"`
}
