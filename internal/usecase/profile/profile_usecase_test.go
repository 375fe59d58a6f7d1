package profile

import (
	"context"
	"testing"

	"github.com/gdugdh24/skillswap-backend/internal/domain"
	"github.com/gdugdh24/skillswap-backend/internal/repository"
	"github.com/gdugdh24/skillswap-backend/internal/repository/memory"
	"github.com/gdugdh24/skillswap-backend/internal/usecase/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type fixture struct {
	uc        *ProfileUseCase
	users     *user.UserUseCase
	skills    repository.SkillRepository
	interests repository.InterestRepository
}

func newFixture() *fixture {
	s := memory.NewStore()
	userRepo := memory.NewUserRepository(s)
	users := user.NewUserUseCase(userRepo, bcrypt.MinCost)
	skills := memory.NewSkillRepository(s)
	interests := memory.NewInterestRepository(s)
	return &fixture{
		uc:        NewProfileUseCase(memory.NewProfileRepository(s), userRepo, skills, interests, users),
		users:     users,
		skills:    skills,
		interests: interests,
	}
}

func (f *fixture) register(t *testing.T, username string) *domain.User {
	t.Helper()
	u, err := f.users.CreateUser(context.Background(), &user.CreateUserRequest{
		Username: username,
		Email:    username + "@example.com",
		Password: "password123",
	})
	require.NoError(t, err)
	return u
}

func strPtr(s string) *string { return &s }

func TestCreateProfile_UnknownUser(t *testing.T) {
	f := newFixture()

	_, err := f.uc.CreateProfile(context.Background(), &CreateProfileRequest{User: 42})

	verr, ok := domain.AsValidationError(err)
	require.True(t, ok)
	assert.Contains(t, verr.Fields, "user")
}

func TestCreateProfile_AlreadyExists(t *testing.T) {
	f := newFixture()
	u := f.register(t, "alice")

	_, err := f.uc.CreateProfile(context.Background(), &CreateProfileRequest{User: u.ID})

	verr, ok := domain.AsValidationError(err)
	require.True(t, ok)
	assert.Equal(t, "profile with this user already exists", verr.Fields["user"])
}

func TestUpdateProfile_PatchKeepsAbsentFields(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	u := f.register(t, "alice")
	python, err := f.skills.Create(ctx, "Python")
	require.NoError(t, err)

	me, err := f.uc.GetMyProfile(ctx, u.ID)
	require.NoError(t, err)

	_, err = f.uc.UpdateProfile(ctx, me.Profile.ID, &UpdateProfileRequest{
		Country:  strPtr(" Germany "),
		SkillIDs: &[]int{python.ID},
	}, true)
	require.NoError(t, err)

	p, err := f.uc.UpdateProfile(ctx, me.Profile.ID, &UpdateProfileRequest{InterestIDs: &[]int{}}, true)
	require.NoError(t, err)
	require.NotNil(t, p.Country)
	assert.Equal(t, "Germany", *p.Country)
	require.Len(t, p.Skills, 1)
	assert.Equal(t, "Python", p.Skills[0].Name)
	assert.Empty(t, p.Interests)
}

func TestUpdateProfile_PutClearsAbsentFields(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	u := f.register(t, "alice")
	python, err := f.skills.Create(ctx, "Python")
	require.NoError(t, err)

	me, err := f.uc.GetMyProfile(ctx, u.ID)
	require.NoError(t, err)
	_, err = f.uc.UpdateProfile(ctx, me.Profile.ID, &UpdateProfileRequest{
		Country:  strPtr("Germany"),
		SkillIDs: &[]int{python.ID},
	}, true)
	require.NoError(t, err)

	p, err := f.uc.UpdateProfile(ctx, me.Profile.ID, &UpdateProfileRequest{}, false)
	require.NoError(t, err)
	assert.Nil(t, p.Country)
	assert.Empty(t, p.Skills)
}

func TestUpdateProfile_UnknownTags(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	u := f.register(t, "alice")
	me, err := f.uc.GetMyProfile(ctx, u.ID)
	require.NoError(t, err)

	_, err = f.uc.UpdateProfile(ctx, me.Profile.ID, &UpdateProfileRequest{
		SkillIDs:    &[]int{99},
		InterestIDs: &[]int{98},
	}, true)

	verr, ok := domain.AsValidationError(err)
	require.True(t, ok)
	assert.Contains(t, verr.Fields, "skill_ids")
	assert.Contains(t, verr.Fields, "interest_ids")
}

func TestUpdateProfile_NotFound(t *testing.T) {
	f := newFixture()

	_, err := f.uc.UpdateProfile(context.Background(), 7, &UpdateProfileRequest{}, true)
	assert.ErrorIs(t, err, domain.ErrProfileNotFound)
}

func TestUpdateMyProfile(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	u := f.register(t, "alice")
	guitar, err := f.interests.Create(ctx, "Guitar")
	require.NoError(t, err)

	me, err := f.uc.UpdateMyProfile(ctx, u.ID, &UpdateMeRequest{
		UpdateUserRequest:    user.UpdateUserRequest{FirstName: strPtr("Alice")},
		UpdateProfileRequest: UpdateProfileRequest{InterestIDs: &[]int{guitar.ID, guitar.ID}},
	}, true)
	require.NoError(t, err)

	assert.Equal(t, "Alice", me.FirstName)
	assert.Equal(t, u.ID, me.Profile.UserID)
	require.Len(t, me.Profile.Interests, 1)
	assert.Equal(t, "Guitar", me.Profile.Interests[0].Name)
}

func TestUpdateMyProfile_BadTagLeavesUserUntouched(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	u := f.register(t, "alice")

	_, err := f.uc.UpdateMyProfile(ctx, u.ID, &UpdateMeRequest{
		UpdateUserRequest:    user.UpdateUserRequest{FirstName: strPtr("Alice")},
		UpdateProfileRequest: UpdateProfileRequest{SkillIDs: &[]int{123}},
	}, true)
	require.Error(t, err)

	got, err := f.users.GetUser(ctx, u.ID)
	require.NoError(t, err)
	assert.Empty(t, got.FirstName)
}

func TestListProfiles_FilterByCountry(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	alice := f.register(t, "alice")
	f.register(t, "bob")

	me, err := f.uc.GetMyProfile(ctx, alice.ID)
	require.NoError(t, err)
	_, err = f.uc.UpdateProfile(ctx, me.Profile.ID, &UpdateProfileRequest{Country: strPtr("Germany")}, true)
	require.NoError(t, err)

	all, err := f.uc.ListProfiles(ctx, repository.ProfileFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	german, err := f.uc.ListProfiles(ctx, repository.ProfileFilter{Country: "Germany"})
	require.NoError(t, err)
	require.Len(t, german, 1)
	assert.Equal(t, alice.ID, german[0].UserID)
}

func TestUpdateMyProfile_InvalidAccountLeavesProfileUntouched(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	u := f.register(t, "alice")
	f.register(t, "bob")
	python, err := f.skills.Create(ctx, "Python")
	require.NoError(t, err)

	_, err = f.uc.UpdateMyProfile(ctx, u.ID, &UpdateMeRequest{
		UpdateUserRequest:    user.UpdateUserRequest{Email: strPtr("bob@example.com")},
		UpdateProfileRequest: UpdateProfileRequest{Country: strPtr("Germany"), SkillIDs: &[]int{python.ID}},
	}, true)
	verr, ok := domain.AsValidationError(err)
	require.True(t, ok)
	assert.Contains(t, verr.Fields, "email")

	me, err := f.uc.GetMyProfile(ctx, u.ID)
	require.NoError(t, err)
	assert.Nil(t, me.Profile.Country)
	assert.Empty(t, me.Profile.Skills)
	assert.Equal(t, "alice@example.com", me.Email)
}
