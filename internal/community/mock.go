package community

import "time"

var mockBase = time.Date(2026, 3, 14, 8, 0, 0, 0, time.UTC)

func at(minutes int) time.Time {
	return mockBase.Add(time.Duration(minutes) * time.Minute)
}

var mockMessages = []Message{
	{Author: "Lucia", Topic: "general", Body: "Welcome to the GreenConnect community! Share your wins here.", PostedAt: at(0)},
	{Author: "Marco", Topic: "transport", Body: "Switched to the bike for my commute this week. 40 km saved!", PostedAt: at(12)},
	{Author: "Ana", Topic: "food", Body: "Anyone have a good lentil curry recipe? Trying meatless Mondays.", PostedAt: at(30)},
	{Author: "Diego", Topic: "energy", Body: "Our building finally installed motion sensors in the hallways.", PostedAt: at(45)},
	{Author: "Sofia", Topic: "food", Body: "Farmers market on Saturday has zero-packaging stalls now.", PostedAt: at(61)},
	{Author: "Lucia", Topic: "waste", Body: "Started composting on the balcony. No smell so far!", PostedAt: at(75)},
	{Author: "Tomas", Topic: "transport", Body: "Car-pool group for the industrial park, reply if interested.", PostedAt: at(90)},
	{Author: "Ana", Topic: "general", Body: "Beach clean-up this Sunday at 9am, bring gloves.", PostedAt: at(120)},
}
