package domain_test

import (
	"testing"

	"github.com/iho/bookkeeper/internal/domain"
)

func TestClassification_Valid(t *testing.T) {
	tests := []struct {
		name           string
		classification domain.Classification
		want           bool
	}{
		{"receivable", domain.ClassificationReceivable, true},
		{"payable", domain.ClassificationPayable, true},
		{"revenue", domain.ClassificationRevenue, true},
		{"expense", domain.ClassificationExpense, true},
		{"asset", domain.ClassificationAsset, true},
		{"liability", domain.ClassificationLiability, true},
		{"unknown", domain.Classification("equity"), false},
		{"empty", domain.Classification(""), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.classification.Valid(); got != tt.want {
				t.Errorf("Valid() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestClassification_NormalSign(t *testing.T) {
	tests := []struct {
		name           string
		classification domain.Classification
		want           int64
	}{
		{"receivable is debit-normal", domain.ClassificationReceivable, 1},
		{"expense is debit-normal", domain.ClassificationExpense, 1},
		{"asset is debit-normal", domain.ClassificationAsset, 1},
		{"payable is credit-normal", domain.ClassificationPayable, -1},
		{"revenue is credit-normal", domain.ClassificationRevenue, -1},
		{"liability is credit-normal", domain.ClassificationLiability, -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.classification.NormalSign(); got != tt.want {
				t.Errorf("NormalSign() = %d, want %d", got, tt.want)
			}
		})
	}
}
