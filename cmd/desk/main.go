package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/labstack/gommon/log"

	"clinicdesk/cmd/internal/client"
	"clinicdesk/cmd/internal/triage"
)

// desk is the front-desk terminal client: it keeps a local mirror of the
// appointment queue and shows it in dispatch order.
func main() {
	_ = godotenv.Load()

	api := getenv("CLINICDESK_API", "http://localhost:6060")

	store := client.NewHTTPStore(api)
	auth := client.NewHTTPAuthenticator(api)
	identity := client.NewIdentityFile(sessionDir())

	var sess *client.Session
	cache := client.NewQueueCache(store, triage.DefaultWeightPolicy, func() triage.MutationState {
		return sess.MutationState()
	})
	sess = client.NewSession(auth, identity, cache, store)

	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	ctx := context.Background()
	var err error
	switch os.Args[1] {
	case "login":
		err = runLogin(ctx, sess, os.Args[2:])
	case "logout":
		err = sess.Logout()
	case "register":
		err = runRegister(ctx, sess, os.Args[2:])
	case "whoami":
		err = runWhoami(ctx, sess)
	case "queue":
		err = runQueue(ctx, sess, cache, os.Args[2:])
	case "add":
		err = runAdd(ctx, sess, cache, os.Args[2:])
	case "remove":
		err = runRemove(ctx, sess, cache, os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}

	if err != nil {
		log.Fatal(err)
	}
}

func runLogin(ctx context.Context, sess *client.Session, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: desk login <email> [password]")
	}
	password := ""
	if len(args) > 1 {
		password = args[1]
	}

	user, err := sess.Login(ctx, args[0], password)
	if err != nil {
		return err
	}
	fmt.Printf("logged in as %s (%s)\n", user.Name, user.Role)
	return nil
}

func runRegister(ctx context.Context, sess *client.Session, args []string) error {
	fs := flag.NewFlagSet("register", flag.ExitOnError)
	username := fs.String("username", "", "login name")
	name := fs.String("name", "", "display name")
	email := fs.String("email", "", "unique email address")
	password := fs.String("password", "", "password (optional)")
	_ = fs.Parse(args)

	user, err := sess.Register(ctx, client.User{
		Username: *username,
		Name:     *name,
		Email:    *email,
		Password: *password,
	})
	if err != nil {
		return err
	}
	fmt.Printf("registered patient %s (%s)\n", user.Name, user.ID)
	return nil
}

func runWhoami(ctx context.Context, sess *client.Session) error {
	if err := sess.Restore(ctx); err != nil {
		return err
	}
	user := sess.CurrentUser()
	if user == nil {
		fmt.Println("not logged in")
		return nil
	}
	fmt.Printf("%s <%s> (%s)\n", user.Name, user.Email, user.Role)
	return nil
}

func runQueue(ctx context.Context, sess *client.Session, cache *client.QueueCache, args []string) error {
	fs := flag.NewFlagSet("queue", flag.ExitOnError)
	volume := fs.Bool("volume-doubled", false, "simulate doubled intake volume")
	shortage := fs.Bool("staff-shortage", false, "simulate staff shortage")
	_ = fs.Parse(args)

	sess.SetMutationState(client.MutationPatch{VolumeDoubled: volume, StaffShortage: shortage})

	if err := sess.Restore(ctx); err != nil {
		return err
	}
	if sess.CurrentUser() == nil {
		// Listing is open; a session just adds the bearer token.
		if err := cache.Refresh(ctx); err != nil {
			return err
		}
	}

	for i, a := range cache.Ordered() {
		fmt.Printf("%2d. [%-12s %.2f] %-20s %s  %s\n",
			i+1, a.TriageLevel, a.TriageScore, a.PatientName, a.TimeSlot, a.RegisteredAt)
	}
	return nil
}

func runAdd(ctx context.Context, sess *client.Session, cache *client.QueueCache, args []string) error {
	fs := flag.NewFlagSet("add", flag.ExitOnError)
	patientID := fs.String("patient-id", "", "patient identifier")
	patientName := fs.String("patient-name", "", "patient display name")
	age := fs.Int("age", 0, "patient age")
	gender := fs.String("gender", "", "patient gender")
	phone := fs.String("phone", "", "contact phone")
	symptoms := fs.String("symptoms", "", "free-text symptom description")
	urgency := fs.Int("urgency", 1, "intake urgency scale")
	level := fs.String("level", string(triage.LevelNormal), "triage level")
	score := fs.Float64("score", 0, "triage score")
	slot := fs.String("slot", "", "requested time slot")
	doctorID := fs.String("doctor-id", "", "assigned doctor")
	offline := fs.Bool("offline", false, "registered while offline")
	_ = fs.Parse(args)

	if err := sess.Restore(ctx); err != nil {
		return err
	}

	appt, err := cache.Add(ctx, triage.Appointment{
		PatientID:    *patientID,
		PatientName:  *patientName,
		Age:          *age,
		Gender:       *gender,
		Phone:        *phone,
		Symptoms:     *symptoms,
		UrgencyScale: *urgency,
		TriageLevel:  triage.Level(*level),
		TriageScore:  *score,
		TimeSlot:     *slot,
		DoctorID:     *doctorID,
		IsOffline:    *offline,
	})
	if err != nil {
		return err
	}
	fmt.Printf("queued %s as %s\n", appt.PatientName, appt.ID)
	return nil
}

func runRemove(ctx context.Context, sess *client.Session, cache *client.QueueCache, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: desk remove <id>")
	}
	if err := sess.Restore(ctx); err != nil {
		return err
	}
	return cache.Remove(ctx, args[0])
}

func sessionDir() string {
	if dir := os.Getenv("CLINICDESK_SESSION_DIR"); dir != "" {
		return dir
	}
	base, err := os.UserConfigDir()
	if err != nil {
		base = "."
	}
	return filepath.Join(base, "clinicdesk")
}

func usage() {
	fmt.Fprintln(os.Stderr, `usage: desk <command> [flags]

commands:
  login <email> [password]   sign in and persist the session
  logout                     clear the persisted session
  register [flags]           register a new patient identity
  whoami                     show the restored session identity
  queue [flags]              print the queue in dispatch order
  add [flags]                register an appointment request
  remove <id>                withdraw an appointment request`)
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
