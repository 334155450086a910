package provider

// Provider is immutable reference data: the clinicians appointments are
// booked against. WorkDays uses ISO weekday numbers, 1 = Monday through
// 7 = Sunday. StartHour/EndHour bound availability on a 24h clock.
type Provider struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Specialty string `json:"specialty"`
	WorkDays  []int  `json:"workDays"`
	StartHour int    `json:"startHour"`
	EndHour   int    `json:"endHour"`
}

// Schedule is the availability projection served to the scheduler UI.
type Schedule struct {
	ID        string `json:"id"`
	WorkDays  []int  `json:"workDays"`
	StartHour int    `json:"startHour"`
	EndHour   int    `json:"endHour"`
}

func (p Provider) Schedule() Schedule {
	return Schedule{
		ID:        p.ID,
		WorkDays:  p.WorkDays,
		StartHour: p.StartHour,
		EndHour:   p.EndHour,
	}
}
