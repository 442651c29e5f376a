package domain

type NotificationMessage struct {
	Type string `json:"type"`
	To   string `json:"to"`
	Data any    `json:"data"`
}

type SchedulePublishedData struct {
	FullName    string `json:"fullName"`
	FranchiseID string `json:"franchiseId"`
	WeekID      string `json:"weekId"`
	Created     int    `json:"created"`
	Updated     int    `json:"updated"`
	Deleted     int    `json:"deleted"`
}

type ShiftChangeRequestedData struct {
	FullName  string `json:"fullName"`
	RiderName string `json:"riderName"`
	WeekID    string `json:"weekId"`
	Note      string `json:"note"`
}
