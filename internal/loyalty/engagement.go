package loyalty

// WeeklyEngagementGoal is the weekly engagement percentage members aim for.
const WeeklyEngagementGoal = 70

type Engagement struct {
	Level       string `json:"level"`
	Color       string `json:"color"`
	Description string `json:"description"`
	Goal        int    `json:"goal"`
	GoalReached bool   `json:"goalReached"`
}

func EngagementFor(progress int) Engagement {
	e := Engagement{Goal: WeeklyEngagementGoal, GoalReached: progress >= WeeklyEngagementGoal}
	switch {
	case progress >= 80:
		e.Level, e.Color, e.Description = "Excelente", "text-green-600", "Parabéns! Você está super engajado!"
	case progress >= 60:
		e.Level, e.Color, e.Description = "Bom", "text-blue-600", "Continue assim para manter o ritmo!"
	case progress >= 40:
		e.Level, e.Color, e.Description = "Regular", "text-yellow-600", "Você pode melhorar seu engajamento."
	default:
		e.Level, e.Color, e.Description = "Baixo", "text-red-600", "Precisa de mais atividade para crescer."
	}
	return e
}
