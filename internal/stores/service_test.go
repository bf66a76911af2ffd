package stores

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/kleytondigital/shopflow-catalog-ai-sub007/internal/pricing"
	"github.com/kleytondigital/shopflow-catalog-ai-sub007/pkg/db/models"
	"github.com/kleytondigital/shopflow-catalog-ai-sub007/pkg/enums"
	pkgerrors "github.com/kleytondigital/shopflow-catalog-ai-sub007/pkg/errors"
)

func gradualInput() UpdatePricingConfigInput {
	return UpdatePricingConfigInput{
		Mode: enums.PricingModeGradualWholesale,
		Tiers: []pricing.Tier{
			{Name: "Tier 1", MinQuantity: 1, UnitPrice: decimal.RequireFromString("20"), Order: 1, Active: true},
			{Name: "Tier 2", MinQuantity: 5, UnitPrice: decimal.RequireFromString("18"), Order: 2, Active: true},
			{Name: "Tier 3", MinQuantity: 10, UnitPrice: decimal.RequireFromString("16"), Order: 3, Active: true},
		},
	}
}

func TestNewServiceRequiresDependencies(t *testing.T) {
	t.Parallel()

	conn := newTestDB(t)
	if _, err := NewService(ServiceParams{Logger: newTestLogger()}); err == nil {
		t.Fatal("expected error without repository")
	}
	if _, err := NewService(ServiceParams{Repo: NewRepository(conn), Logger: newTestLogger()}); err == nil {
		t.Fatal("expected error without transaction runner")
	}
	if _, err := NewService(ServiceParams{Repo: NewRepository(conn), Tx: stubTxRunner{}}); err == nil {
		t.Fatal("expected error without logger")
	}
}

func TestServiceGetPricingConfigNotFound(t *testing.T) {
	t.Parallel()

	stack := newTestStack(t)
	_, err := stack.svc.GetPricingConfig(context.Background(), uuid.New())
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestServiceGetPricingConfigRequiresStore(t *testing.T) {
	t.Parallel()

	stack := newTestStack(t)
	_, err := stack.svc.GetPricingConfig(context.Background(), uuid.Nil)
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestServiceUpdateThenGetUsesCache(t *testing.T) {
	t.Parallel()

	stack := newTestStack(t)
	ctx := context.Background()
	storeID := uuid.New()

	updated, err := stack.svc.UpdatePricingConfig(ctx, storeID, gradualInput())
	require.NoError(t, err)
	require.Equal(t, enums.CurrencyBRL, updated.Currency, "default currency applies when omitted")
	require.Len(t, updated.Tiers, 3)

	first, err := stack.svc.GetPricingConfig(ctx, storeID)
	require.NoError(t, err)
	require.Equal(t, 1, stack.repo.finds)
	require.True(t, stack.mr.Exists(stack.cache.PricingConfigKey(storeID.String())))

	second, err := stack.svc.GetPricingConfig(ctx, storeID)
	require.NoError(t, err)
	require.Equal(t, 1, stack.repo.finds, "second read should be served from cache")
	require.Equal(t, first.Mode, second.Mode)
	require.Len(t, second.Tiers, 3)
	require.True(t, second.Tiers[2].UnitPrice.Equal(decimal.RequireFromString("16")))

	res := pricing.Resolve(second, pricing.Item{RetailPrice: decimal.RequireFromString("20")}, 10)
	require.True(t, res.UnitPrice.Equal(decimal.RequireFromString("16")))
	require.True(t, res.Savings.Equal(decimal.RequireFromString("40")))
}

func TestServiceUpdateInvalidatesCache(t *testing.T) {
	t.Parallel()

	stack := newTestStack(t)
	ctx := context.Background()
	storeID := uuid.New()

	_, err := stack.svc.UpdatePricingConfig(ctx, storeID, gradualInput())
	require.NoError(t, err)
	_, err = stack.svc.GetPricingConfig(ctx, storeID)
	require.NoError(t, err)

	_, err = stack.svc.UpdatePricingConfig(ctx, storeID, UpdatePricingConfigInput{
		Mode:     enums.PricingModeRetailOnly,
		Currency: enums.CurrencyUSD,
	})
	require.NoError(t, err)
	require.False(t, stack.mr.Exists(stack.cache.PricingConfigKey(storeID.String())))

	got, err := stack.svc.GetPricingConfig(ctx, storeID)
	require.NoError(t, err)
	require.Equal(t, enums.PricingModeRetailOnly, got.Mode)
	require.Equal(t, enums.CurrencyUSD, got.Currency)
	require.Empty(t, got.Tiers)
}

func TestServiceGetSurvivesCacheOutage(t *testing.T) {
	t.Parallel()

	stack := newTestStack(t)
	ctx := context.Background()
	storeID := uuid.New()

	_, err := stack.svc.UpdatePricingConfig(ctx, storeID, gradualInput())
	require.NoError(t, err)

	stack.mr.Close()

	got, err := stack.svc.GetPricingConfig(ctx, storeID)
	require.NoError(t, err)
	require.Equal(t, enums.PricingModeGradualWholesale, got.Mode)
}

func TestServiceGetIgnoresCorruptCacheEntry(t *testing.T) {
	t.Parallel()

	stack := newTestStack(t)
	ctx := context.Background()
	storeID := uuid.New()

	_, err := stack.svc.UpdatePricingConfig(ctx, storeID, gradualInput())
	require.NoError(t, err)
	require.NoError(t, stack.mr.Set(stack.cache.PricingConfigKey(storeID.String()), "{broken"))

	got, err := stack.svc.GetPricingConfig(ctx, storeID)
	require.NoError(t, err)
	require.Len(t, got.Tiers, 3)
	require.Equal(t, 1, stack.repo.finds)
}

func TestServiceUpdateValidation(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name  string
		input UpdatePricingConfigInput
		field string
	}{
		{
			name:  "unknown mode",
			input: UpdatePricingConfigInput{Mode: "bulk"},
			field: "mode",
		},
		{
			name:  "unknown currency",
			input: UpdatePricingConfigInput{Mode: enums.PricingModeRetailOnly, Currency: "JPY"},
			field: "currency",
		},
		{
			name: "tier without name",
			input: UpdatePricingConfigInput{Mode: enums.PricingModeGradualWholesale, Tiers: []pricing.Tier{
				{Name: " ", MinQuantity: 2, UnitPrice: decimal.NewFromInt(5), Active: true},
			}},
			field: "tiers[0].name",
		},
		{
			name: "tier below one unit",
			input: UpdatePricingConfigInput{Mode: enums.PricingModeGradualWholesale, Tiers: []pricing.Tier{
				{Name: "Zero", MinQuantity: 0, UnitPrice: decimal.NewFromInt(5), Active: true},
			}},
			field: "tiers[0].min_quantity",
		},
		{
			name: "negative price",
			input: UpdatePricingConfigInput{Mode: enums.PricingModeGradualWholesale, Tiers: []pricing.Tier{
				{Name: "Neg", MinQuantity: 3, UnitPrice: decimal.NewFromInt(-1), Active: true},
			}},
			field: "tiers[0].unit_price",
		},
		{
			name: "duplicate active threshold",
			input: UpdatePricingConfigInput{Mode: enums.PricingModeGradualWholesale, Tiers: []pricing.Tier{
				{Name: "A", MinQuantity: 5, UnitPrice: decimal.NewFromInt(9), Active: true},
				{Name: "B", MinQuantity: 5, UnitPrice: decimal.NewFromInt(8), Active: true},
			}},
			field: "tiers[1].min_quantity",
		},
	}

	stack := newTestStack(t)
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := stack.svc.UpdatePricingConfig(context.Background(), uuid.New(), tc.input)
			typed := pkgerrors.As(err)
			require.NotNil(t, typed)
			require.Equal(t, pkgerrors.CodeValidation, typed.Code())
			details, ok := typed.Details().(map[string]string)
			require.True(t, ok)
			require.Contains(t, details, tc.field)
		})
	}
}

func TestServiceUpdateAllowsInactiveDuplicates(t *testing.T) {
	t.Parallel()

	stack := newTestStack(t)
	got, err := stack.svc.UpdatePricingConfig(context.Background(), uuid.New(), UpdatePricingConfigInput{
		Mode: enums.PricingModeGradualWholesale,
		Tiers: []pricing.Tier{
			{Name: "Live", MinQuantity: 5, UnitPrice: decimal.NewFromInt(9), Active: true},
			{Name: "Draft", MinQuantity: 5, UnitPrice: decimal.NewFromInt(8), Active: false},
		},
	})
	require.NoError(t, err)
	require.Len(t, got.Tiers, 2)
	require.False(t, got.Tiers[1].Active)
}

func TestServiceUpdateDependencyError(t *testing.T) {
	t.Parallel()

	svc, err := NewService(ServiceParams{
		Repo:   failingRepo{},
		Tx:     stubTxRunner{},
		Logger: newTestLogger(),
	})
	require.NoError(t, err)

	_, err = svc.UpdatePricingConfig(context.Background(), uuid.New(), gradualInput())
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeDependency {
		t.Fatalf("expected dependency error, got %v", err)
	}

	_, err = svc.GetPricingConfig(context.Background(), uuid.New())
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeDependency {
		t.Fatalf("expected dependency error, got %v", err)
	}
}

type stubTxRunner struct{}

func (stubTxRunner) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return fn(nil)
}

type failingRepo struct{}

func (failingRepo) FindPricingConfig(ctx context.Context, storeID uuid.UUID) (*models.StorePricingConfig, error) {
	return nil, errors.New("connection reset")
}

func (failingRepo) ReplacePricingConfigWithTx(tx *gorm.DB, cfg *models.StorePricingConfig) error {
	return errors.New("connection reset")
}
