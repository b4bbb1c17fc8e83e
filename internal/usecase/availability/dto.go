package availability

type CapacityRuleDTO struct {
	Weekday       int32  `json:"weekday" validate:"min=0,max=6"`
	MorningJobs   *int64 `json:"morning_jobs" validate:"omitempty,min=0"`
	AfternoonJobs *int64 `json:"afternoon_jobs" validate:"omitempty,min=0"`
}
