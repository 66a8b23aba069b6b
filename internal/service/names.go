package service

import (
	"math/rand"

	"github.com/jaswdr/faker/v2"

	"toolsbot/internal/domain"
)

// RandomName draws a first name matching the user's stored gender.
func RandomName(gender domain.Gender) string {
	person := faker.New().Person()
	switch gender {
	case domain.GenderFemale:
		return person.FirstNameFemale()
	case domain.GenderMale:
		return person.FirstNameMale()
	default:
		if rand.Intn(2) == 0 {
			return person.FirstNameMale()
		}
		return person.FirstNameFemale()
	}
}
