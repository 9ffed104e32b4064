package main

import (
	"fmt"
	"os"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/linesmerrill/civic-report-api/models"
)

// Quick utility to seed a login for the token endpoint
// Usage: go run scripts/create_user.go <email> <password> <role> [departmentId]
func main() {
	if len(os.Args) < 4 {
		fmt.Println("Usage: go run scripts/create_user.go <email> <password> <role> [departmentId]")
		fmt.Println("Example: go run scripts/create_user.go clerk@city.gov 0i2rinbcp12yc31h staff 5f1b2c3d4e5f6a7b8c9d0e1f")
		os.Exit(1)
	}

	email := strings.ToLower(os.Args[1])
	role := models.Role(os.Args[3])
	switch role {
	case models.RoleCitizen, models.RoleStaff, models.RoleAdmin, models.RoleSuperAdmin:
	default:
		fmt.Printf("Unknown role %q\n", role)
		os.Exit(1)
	}
	department := ""
	if len(os.Args) > 4 {
		department = os.Args[4]
	}
	if role == models.RoleStaff && department == "" {
		fmt.Println("Staff users need a departmentId")
		os.Exit(1)
	}

	// Generate bcrypt hash
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(os.Args[2]), bcrypt.DefaultCost)
	if err != nil {
		fmt.Printf("Error generating hash: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Bcrypt Hash: %s\n", string(hashedPassword))
	fmt.Printf("\nTo create the user in MongoDB, run:\n")
	fmt.Printf("db.users.insertOne({\n")
	fmt.Printf("  email: %q,\n", email)
	fmt.Printf("  password: %q,\n", string(hashedPassword))
	fmt.Printf("  role: %q,\n", role)
	if department != "" {
		fmt.Printf("  department: %q,\n", department)
	}
	fmt.Printf("})\n")
}
