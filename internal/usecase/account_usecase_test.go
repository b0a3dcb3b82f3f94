package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/iho/goatm/internal/domain"
	"github.com/iho/goatm/internal/usecase"
	"github.com/iho/goatm/internal/usecase/mocks"
)

func TestAccountUseCase_List(t *testing.T) {
	ctx := context.Background()
	repo := seededRepo(t)

	session := newSession(t, repo)
	require.NoError(t, session.Authenticate(ctx, "1234", "4321"))
	_, err := session.Transfer(ctx, "7890", amount("50"))
	require.NoError(t, err)

	summaries, err := usecase.NewAccountUseCase(repo).List(ctx)
	require.NoError(t, err)

	require.Len(t, summaries, 3)
	assert.Equal(t, "1234", summaries[0].ID)
	assert.Equal(t, "450.00", summaries[0].Balance.StringFixed(2))
	assert.Equal(t, "3456", summaries[1].ID)
	assert.Equal(t, "300.00", summaries[1].Balance.StringFixed(2))
	assert.Equal(t, "7890", summaries[2].ID)
	assert.Equal(t, "750.00", summaries[2].Balance.StringFixed(2))
}

func TestAccountUseCase_ListError(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockAccountRepository(ctrl)

	storeErr := errors.New("store unavailable")
	repo.EXPECT().List(gomock.Any()).Return(nil, storeErr)

	summaries, err := usecase.NewAccountUseCase(repo).List(context.Background())
	assert.ErrorIs(t, err, storeErr)
	assert.Nil(t, summaries)
}

func TestAccountUseCase_ListFromMock(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockAccountRepository(ctrl)

	acc, err := domain.NewAccount("42", "0042", decimal.RequireFromString("12.5"))
	require.NoError(t, err)
	repo.EXPECT().List(gomock.Any()).Return([]*domain.Account{acc}, nil)

	summaries, err := usecase.NewAccountUseCase(repo).List(context.Background())
	require.NoError(t, err)
	require.Len(t, summaries, 1)
	assert.Equal(t, "42", summaries[0].ID)
	assert.Equal(t, "12.50", summaries[0].Balance.StringFixed(2))
}
