package interaction

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marceelkacz03/lola-crm/internal/model"
	apperrors "github.com/marceelkacz03/lola-crm/pkg/errors"
	"github.com/marceelkacz03/lola-crm/pkg/logger"
)

type fakeInteractionRepo struct {
	created []*model.Interaction
}

func (f *fakeInteractionRepo) Create(ctx context.Context, interaction *model.Interaction) error {
	interaction.ID = uuid.New()
	interaction.CreatedAt = time.Now()
	f.created = append(f.created, interaction)
	return nil
}
func (f *fakeInteractionRepo) List(ctx context.Context) ([]*model.Interaction, error) {
	return f.created, nil
}

type fakeAccountRepo struct {
	advanced    map[uuid.UUID]time.Time
	advanceFail error
}

func (f *fakeAccountRepo) Create(ctx context.Context, account *model.Account) error { return nil }
func (f *fakeAccountRepo) Get(ctx context.Context, id uuid.UUID) (*model.Account, error) {
	return nil, nil
}
func (f *fakeAccountRepo) Update(ctx context.Context, account *model.Account) error { return nil }
func (f *fakeAccountRepo) Delete(ctx context.Context, id uuid.UUID) error           { return nil }
func (f *fakeAccountRepo) List(ctx context.Context) ([]*model.Account, error)       { return nil, nil }
func (f *fakeAccountRepo) AdvanceFollowup(ctx context.Context, id uuid.UUID, followupDate time.Time) error {
	if f.advanceFail != nil {
		return f.advanceFail
	}
	if f.advanced == nil {
		f.advanced = map[uuid.UUID]time.Time{}
	}
	f.advanced[id] = followupDate
	return nil
}

func TestCreateInteractionAdvancesAccountFollowup(t *testing.T) {
	repo := &fakeInteractionRepo{}
	accounts := &fakeAccountRepo{}
	svc := NewService(repo, accounts, logger.NewLogger(nil))

	accountID := uuid.New()
	followup := "2026-09-15"
	interaction, err := svc.CreateInteraction(context.Background(), &model.CreateInteractionRequest{
		AccountID:        accountID,
		Type:             model.InteractionTypeCall,
		Note:             "Discussed menu options",
		NextFollowupDate: &followup,
	}, uuid.New())
	require.NoError(t, err)

	require.NotNil(t, interaction.NextFollowupDate)
	advanced, ok := accounts.advanced[accountID]
	require.True(t, ok)
	assert.Equal(t, "2026-09-15", advanced.Format("2006-01-02"))
}

func TestCreateInteractionWithoutFollowupSkipsAccount(t *testing.T) {
	accounts := &fakeAccountRepo{}
	svc := NewService(&fakeInteractionRepo{}, accounts, logger.NewLogger(nil))

	_, err := svc.CreateInteraction(context.Background(), &model.CreateInteractionRequest{
		AccountID: uuid.New(),
		Type:      model.InteractionTypeNote,
		Note:      "Left a voicemail",
	}, uuid.New())
	require.NoError(t, err)

	assert.Empty(t, accounts.advanced)
}

func TestCreateInteractionFollowupFailureIsNonFatal(t *testing.T) {
	repo := &fakeInteractionRepo{}
	accounts := &fakeAccountRepo{advanceFail: errors.New("db down")}
	svc := NewService(repo, accounts, logger.NewLogger(nil))

	followup := "2026-09-15"
	interaction, err := svc.CreateInteraction(context.Background(), &model.CreateInteractionRequest{
		AccountID:        uuid.New(),
		Type:             model.InteractionTypeEmail,
		Note:             "Sent the offer deck",
		NextFollowupDate: &followup,
	}, uuid.New())

	require.NoError(t, err, "the interaction is recorded even if the account update fails")
	assert.Len(t, repo.created, 1)
	assert.NotNil(t, interaction)
}

func TestCreateInteractionInvalidFollowupDate(t *testing.T) {
	svc := NewService(&fakeInteractionRepo{}, &fakeAccountRepo{}, logger.NewLogger(nil))

	bad := "15.09.2026"
	_, err := svc.CreateInteraction(context.Background(), &model.CreateInteractionRequest{
		AccountID:        uuid.New(),
		Type:             model.InteractionTypeCall,
		Note:             "Quick check-in",
		NextFollowupDate: &bad,
	}, uuid.New())
	require.Error(t, err)

	appErr, ok := err.(*apperrors.AppError)
	require.True(t, ok)
	assert.Equal(t, 422, appErr.StatusCode())
}
