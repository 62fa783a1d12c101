package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"bookstore/internal/errors"
	"bookstore/internal/model"
)

func TestUserService_UpdateProfile(t *testing.T) {
	existingHash, _ := bcrypt.GenerateFromPassword([]byte("old-password"), 10)

	tests := []struct {
		name          string
		input         ProfileInput
		setupMock     func(*MockUserRepository)
		expectedError error
		check         func(*testing.T, *model.User)
	}{
		{
			name:  "rename keeps password",
			input: ProfileInput{Name: "New Name", Email: "john@example.com"},
			setupMock: func(m *MockUserRepository) {
				m.On("FindByID", mock.Anything, uint(1)).Return(&model.User{
					ID: 1, Name: "John Doe", Email: "john@example.com", PasswordHash: string(existingHash),
				}, nil)
				m.On("FindByEmail", mock.Anything, "john@example.com").Return(&model.User{
					ID: 1, Email: "john@example.com",
				}, nil)
				m.On("Update", mock.Anything, mock.AnythingOfType("*model.User")).Return(nil)
			},
			check: func(t *testing.T, user *model.User) {
				assert.Equal(t, "New Name", user.Name)
				assert.Equal(t, string(existingHash), user.PasswordHash)
			},
		},
		{
			name:  "email taken by another user",
			input: ProfileInput{Name: "John Doe", Email: "taken@example.com"},
			setupMock: func(m *MockUserRepository) {
				m.On("FindByID", mock.Anything, uint(1)).Return(&model.User{
					ID: 1, Name: "John Doe", Email: "john@example.com", PasswordHash: string(existingHash),
				}, nil)
				m.On("FindByEmail", mock.Anything, "taken@example.com").Return(&model.User{
					ID: 2, Email: "taken@example.com",
				}, nil)
			},
			expectedError: errors.ErrEmailTaken,
		},
		{
			name:  "new password is rehashed",
			input: ProfileInput{Name: "John Doe", Email: "john@example.com", NewPassword: "fresh-password"},
			setupMock: func(m *MockUserRepository) {
				m.On("FindByID", mock.Anything, uint(1)).Return(&model.User{
					ID: 1, Name: "John Doe", Email: "john@example.com", PasswordHash: string(existingHash),
				}, nil)
				m.On("FindByEmail", mock.Anything, "john@example.com").Return(nil, gorm.ErrRecordNotFound)
				m.On("Update", mock.Anything, mock.AnythingOfType("*model.User")).Return(nil)
			},
			check: func(t *testing.T, user *model.User) {
				assert.NotEqual(t, string(existingHash), user.PasswordHash)
				assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("fresh-password")))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockUserRepository)
			tt.setupMock(mockRepo)

			service := NewUserService(mockRepo, nil)
			user, err := service.UpdateProfile(context.Background(), 1, tt.input)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, user)
			} else {
				assert.NoError(t, err)
				if tt.check != nil {
					tt.check(t, user)
				}
			}

			mockRepo.AssertExpectations(t)
		})
	}
}
