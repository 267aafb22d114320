package dto

// SubmitMeetingRequest carries the multipart form fields accompanying an
// uploaded recording. The file itself arrives as the "file" part.
type SubmitMeetingRequest struct {
	Title string `form:"title"`
	Date  string `form:"date"` // YYYY-MM-DD, defaults to today
}

// CompleteActionRequest marks one action item complete.
type CompleteActionRequest struct {
	ChangedBy string `json:"changed_by" validate:"required"`
	Reason    string `json:"reason"`
}

// ListActionsRequest narrows the flat action listing.
type ListActionsRequest struct {
	Status  string `query:"status" validate:"omitempty,oneof=open completed"`
	Urgency string `query:"urgency" validate:"omitempty,oneof=urgent high medium low"`
	Meeting string `query:"meeting"`
	Sort    string `query:"sort" validate:"omitempty,oneof=deadline urgency created_at"`
}
