package utils

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/repaart-dev/ops-console/backend/internal/domain"
)

var commonFirstNames = []string{
	"Ana", "Luis", "Marta", "Carlos", "Lucia", "Javier", "Sara", "David",
	"Elena", "Pablo", "Carmen", "Sergio", "Laura", "Diego", "Paula", "Ivan",
	"Nerea", "Alvaro", "Marina", "Hugo",
}

var commonSurnames = []string{
	"Garcia", "Martinez", "Lopez", "Sanchez", "Gonzalez", "Perez", "Romero",
	"Torres", "Ramirez", "Flores", "Navarro", "Jimenez", "Molina", "Ortega",
	"Delgado", "Castro", "Vargas", "Rubio", "Serrano", "Blanco",
}

func GenerateRandomSpanishName() string {
	first := commonFirstNames[rand.Intn(len(commonFirstNames))]
	surname := commonSurnames[rand.Intn(len(commonSurnames))]
	return first + " " + surname
}

var digits = "0123456789"

func GenerateUsernameFromName(fullName string) string {
	parts := strings.Fields(strings.ToLower(fullName))
	username := ""
	for _, part := range parts {
		length := rand.Intn(len(part)) + 1
		username += part[:length]
	}

	digitsLength := rand.Intn(3) + 1
	for i := 0; i < digitsLength; i++ {
		username += string(digits[rand.Intn(len(digits))])
	}

	return username
}

var letters = []rune("abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789!@#$%^&*")

func GenerateRandomPassword(length int) string {
	password := make([]rune, length)
	for i := range password {
		password[i] = letters[rand.Intn(len(letters))]
	}
	return string(password)
}

// plateConsonants excludes vowels and Q per the Spanish plate alphabet.
var plateConsonants = "BCDFGHJKLMNPRSTVWXYZ"

func GenerateRandomPlate() string {
	suffix := make([]byte, 3)
	for i := range suffix {
		suffix[i] = plateConsonants[rand.Intn(len(plateConsonants))]
	}
	return fmt.Sprintf("%04d-%s", rand.Intn(10000), suffix)
}

var riderStatuses = []domain.RiderStatus{
	domain.RiderStatusActive,
	domain.RiderStatusActive,
	domain.RiderStatusOnRoute,
	domain.RiderStatusInactive,
}

func GenerateRandomRider(franchiseID string) *domain.Rider {
	contracts := []float64{20, 30, 40}
	return &domain.Rider{
		ID:            uuid.NewString(),
		FranchiseID:   franchiseID,
		FullName:      GenerateRandomSpanishName(),
		Status:        riderStatuses[rand.Intn(len(riderStatuses))],
		ContractHours: contracts[rand.Intn(len(contracts))],
		VehiclePlate:  GenerateRandomPlate(),
	}
}

var planningRoles = []domain.Role{
	domain.RoleObserver,
	domain.RolePlanner,
	domain.RoleAdministrator,
}

func GenerateRandomUser(password, franchiseID, emailDomain string) (*domain.User, error) {
	fullName := GenerateRandomSpanishName()
	username := GenerateUsernameFromName(fullName)
	passwordHash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	return &domain.User{
		Username:     username,
		PasswordHash: string(passwordHash),
		FullName:     fullName,
		Email:        username + "@" + emailDomain,
		Role:         planningRoles[rand.Intn(len(planningRoles))],
		FranchiseID:  franchiseID,
	}, nil
}
