package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log"
	"net/mail"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/vlatan/media-hub/internal/config"
	"github.com/vlatan/media-hub/internal/drivers/database"
	usersRepo "github.com/vlatan/media-hub/internal/repositories/users"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/term"
)

const minPasswordLength = 8

func main() {

	email := flag.String("email", "", "email of the user")
	printOnly := flag.Bool("print", false, "print an email:hash pair for LOCAL_USERS instead of writing to the database")
	flag.Parse()

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Fatalf("failed to load the .env file; %v", err)
	}

	address, err := readEmail(*email)
	if err != nil {
		log.Fatal(err)
	}

	password, err := readPassword()
	if err != nil {
		log.Fatal(err)
	}

	hash, err := bcrypt.GenerateFromPassword(password, bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("failed to hash the password; %v", err)
	}

	if *printOnly {
		fmt.Printf("%s:%s\n", address, hash)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db, err := database.New(config.New())
	if err != nil {
		log.Fatalf("couldn't create DB service; %v", err)
	}
	defer db.Close()

	if err = db.Migrate(ctx); err != nil {
		log.Fatalf("couldn't migrate the database; %v", err)
	}

	id, err := usersRepo.New(db).UpsertUser(ctx, address, string(hash))
	if err != nil {
		log.Fatalf("failed to save the user; %v", err)
	}

	fmt.Printf("User %s saved with ID %s\n", address, id)
}

// readEmail validates the flag value or asks for one
func readEmail(value string) (string, error) {

	if value == "" {
		fmt.Print("Email: ")
		line, err := bufio.NewReader(os.Stdin).ReadString('\n')
		if err != nil {
			return "", fmt.Errorf("failed to read the email; %w", err)
		}
		value = line
	}

	address, err := mail.ParseAddress(strings.TrimSpace(value))
	if err != nil {
		return "", fmt.Errorf("invalid email %q; %w", value, err)
	}

	return strings.ToLower(address.Address), nil
}

// readPassword prompts twice for the password without echoing it
func readPassword() ([]byte, error) {

	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return nil, errors.New("the password prompt needs a terminal")
	}

	fmt.Print("Password: ")
	password, err := term.ReadPassword(fd)
	fmt.Println()
	if err != nil {
		return nil, fmt.Errorf("failed to read the password; %w", err)
	}

	if len(password) < minPasswordLength {
		return nil, fmt.Errorf("password must be at least %d characters long", minPasswordLength)
	}

	fmt.Print("Repeat password: ")
	repeated, err := term.ReadPassword(fd)
	fmt.Println()
	if err != nil {
		return nil, fmt.Errorf("failed to read the password; %w", err)
	}

	if string(password) != string(repeated) {
		return nil, errors.New("passwords don't match")
	}

	return password, nil
}
