package dto

type UpdateProfileRequest struct {
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	AvatarURL *string `json:"avatar_url"`
	Bio       *string `json:"bio"`
	UserType  *string `json:"user_type"`
}

type UpdateMentorRequest struct {
	HourlyRate      *float64 `json:"hourly_rate"`
	YearsExperience *int     `json:"years_experience"`
	Industry        *string  `json:"industry"`
	Expertise       []string `json:"expertise"`
	Company         *string  `json:"company"`
	JobTitle        *string  `json:"job_title"`
}

type EnsureMentorRequest struct {
	UserID string `json:"userId"`
}

// SlotInput is one availability window as the client stages it.
type SlotInput struct {
	ID        string `json:"id,omitempty"`
	Day       string `json:"day"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

type SaveAvailabilityRequest struct {
	Slots        []SlotInput `json:"slots"`
	CancelBooked bool        `json:"cancel_booked"`
}

type BookingRequest struct {
	SlotID      string `json:"slot_id"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

type UpdateSessionStatusRequest struct {
	Status string `json:"status"`
}
