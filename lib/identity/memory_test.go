// Copyright 2026 The Roster Authors
// SPDX-License-Identifier: Apache-2.0

package identity

import (
	"reflect"
	"testing"
)

func TestMemory_UserLifecycle(t *testing.T) {
	db := NewMemory()

	if err := db.CreateGroup("backend"); err != nil {
		t.Fatalf("CreateGroup: %v", err)
	}
	if err := db.CreateGroup("backend"); err == nil {
		t.Fatal("expected error creating duplicate group")
	}

	spec := UserSpec{Name: "alice", PrimaryGroup: "backend", HomeDir: "/home/alice"}
	if err := db.CreateUser(spec); err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	if err := db.CreateUser(spec); err == nil {
		t.Fatal("expected error creating duplicate user")
	}

	exists, _ := db.UserExists("alice")
	if !exists {
		t.Fatal("alice should exist")
	}

	if err := db.ExpirePassword("alice"); err != nil {
		t.Fatalf("ExpirePassword: %v", err)
	}
	if !db.PasswordExpired("alice") {
		t.Fatal("password should be expired")
	}

	if err := db.DeleteUser("alice", true); err != nil {
		t.Fatalf("DeleteUser: %v", err)
	}
	if !reflect.DeepEqual(db.RemovedHomes, []string{"/home/alice"}) {
		t.Fatalf("RemovedHomes = %v", db.RemovedHomes)
	}
	if err := db.DeleteUser("alice", true); err == nil {
		t.Fatal("expected error deleting missing user")
	}
}

func TestMemory_CreateUserRequiresGroups(t *testing.T) {
	db := NewMemory()
	err := db.CreateUser(UserSpec{Name: "alice", PrimaryGroup: "backend"})
	if err == nil {
		t.Fatal("expected error for missing primary group")
	}

	if err := db.CreateGroup("backend"); err != nil {
		t.Fatal(err)
	}
	err = db.CreateUser(UserSpec{Name: "alice", PrimaryGroup: "backend", SupplementaryGroups: []string{"docker"}})
	if err == nil {
		t.Fatal("expected error for missing supplementary group")
	}
}

func TestMemory_GroupMembersAndDelete(t *testing.T) {
	db := NewMemory()
	if err := db.CreateGroup("backend"); err != nil {
		t.Fatal(err)
	}
	if err := db.CreateUser(UserSpec{Name: "alice", PrimaryGroup: "backend"}); err != nil {
		t.Fatal(err)
	}
	if err := db.CreateUser(UserSpec{Name: "bob", SupplementaryGroups: []string{"backend"}}); err != nil {
		t.Fatal(err)
	}

	members, _ := db.GroupMembers("backend")
	if !reflect.DeepEqual(members, []string{"alice", "bob"}) {
		t.Fatalf("members = %v", members)
	}

	if err := db.DeleteGroup("backend"); err == nil {
		t.Fatal("expected error deleting group with members")
	}

	if err := db.DeleteUser("alice", false); err != nil {
		t.Fatal(err)
	}
	if err := db.DeleteUser("bob", false); err != nil {
		t.Fatal(err)
	}
	if err := db.DeleteGroup("backend"); err != nil {
		t.Fatalf("DeleteGroup: %v", err)
	}
	exists, _ := db.GroupExists("backend")
	if exists {
		t.Fatal("backend should be gone")
	}
}
