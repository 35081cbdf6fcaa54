package client

import "testing"

func TestIdentityFile_RoundTrip(t *testing.T) {
	f := NewIdentityFile(t.TempDir())

	if got, err := f.Load(); err != nil || got != nil {
		t.Fatalf("fresh file: got (%v, %v), want (nil, nil)", got, err)
	}

	creds := &Credentials{User: User{ID: "u1", Email: "ada@clinic.test", Role: RoleStaff}, Token: "tok"}
	if err := f.Save(creds); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := f.Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got == nil || got.User != creds.User || got.Token != "tok" {
		t.Fatalf("got %+v, want %+v", got, creds)
	}

	if err := f.Clear(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got, err := f.Load(); err != nil || got != nil {
		t.Fatalf("after clear: got (%v, %v), want (nil, nil)", got, err)
	}

	// Clearing twice is fine.
	if err := f.Clear(); err != nil {
		t.Fatalf("second clear: %v", err)
	}
}
