package entity

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUser_Privileges(t *testing.T) {
	u := NewUser("Ada", "ada", nil)
	assert.True(t, u.HasPrivilege(PrivilegeStandard))
	assert.False(t, u.HasPrivilege(PrivilegeUserAdmin))

	u.AddPrivilege(PrivilegeUserAdmin)
	u.AddPrivilege(PrivilegeUserAdmin)
	assert.Equal(t, Privileges{PrivilegeStandard, PrivilegeUserAdmin}, u.Privileges)

	u.AddPrivilege(Privilege("ROOT"))
	assert.Len(t, u.Privileges, 2)

	u.RemovePrivilege(PrivilegeStandard)
	assert.True(t, u.HasPrivilege(PrivilegeStandard), "standard cannot be removed")

	u.RemovePrivilege(PrivilegeUserAdmin)
	assert.Equal(t, Privileges{PrivilegeStandard}, u.Privileges)
}

func TestPrivilegesFromStrings(t *testing.T) {
	testCases := []struct {
		name  string
		input []string
		want  Privileges
	}{
		{"empty", nil, Privileges{PrivilegeStandard}},
		{"admin", []string{"USER_ADMIN"}, Privileges{PrivilegeStandard, PrivilegeUserAdmin}},
		{"duplicates and unknown", []string{"STANDARD", "x", "USER_ADMIN", "USER_ADMIN"}, Privileges{PrivilegeStandard, PrivilegeUserAdmin}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, PrivilegesFromStrings(tc.input))
		})
	}
}

func TestUser_CompareAndEqual(t *testing.T) {
	users := []*User{
		NewUser("Bob", "bob2", nil),
		NewUser("Alice", "alice", nil),
		NewUser("Bob", "bob1", nil),
	}

	slices.SortFunc(users, func(a, b *User) int { return a.Compare(b) })

	assert.Equal(t, []string{"alice", "bob1", "bob2"}, []string{users[0].Username, users[1].Username, users[2].Username})
	assert.True(t, NewUser("A", "same", nil).Equal(NewUser("B", "same", nil)))
	assert.False(t, users[0].Equal(users[1]))
	assert.False(t, users[0].Equal(nil))
}
