package services

import (
	"fmt"
	"time"

	"property-backend/models"
	"property-backend/utils"

	"gorm.io/gorm"
)

// Source labels for a night's resolved price. Downstream grouping compares these
// by equality, so they must stay stable.
const (
	SourceBaseRate     = "base rate"
	SourceUnitOverride = "unit override"
	SourceTypeOverride = "type override"
)

// NightlyPrice is one resolved night of a stay.
type NightlyPrice struct {
	Date   time.Time `json:"date"`
	Price  float64   `json:"price"`
	Source string    `json:"source"`
}

// BreakdownGroup is a run of consecutive nights sharing price and source,
// produced for itemized display.
type BreakdownGroup struct {
	Source    string    `json:"source"`
	UnitPrice float64   `json:"unit_price"`
	Nights    int       `json:"nights"`
	Subtotal  float64   `json:"subtotal"`
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`
}

// PricingService resolves nightly rates from the unit base price and the custom
// pricing rules, and manages the rules themselves.
type PricingService struct {
	DB *gorm.DB
}

func NewPricingService(db *gorm.DB) *PricingService {
	return &PricingService{DB: db}
}

// betterRule reports whether a should win over b within the same scope:
// later CreatedAt wins, equal timestamps fall back to the higher rule ID so the
// outcome is deterministic.
func betterRule(a, b *models.PricingRule) bool {
	if b == nil {
		return true
	}
	if !a.CreatedAt.Equal(b.CreatedAt) {
		return a.CreatedAt.After(b.CreatedAt)
	}
	return a.ID > b.ID
}

// ResolveNightlyPrice picks the price for one night. A unit-scoped rule always
// outranks a type-scoped one; within a scope the most recently created rule
// wins; with no applicable rule the unit's base price applies.
func ResolveNightlyPrice(unit *models.Unit, night time.Time, rules []models.PricingRule) (float64, string) {
	var unitRule, typeRule *models.PricingRule

	for i := range rules {
		rule := &rules[i]
		if !rule.Covers(night) || !rule.AppliesTo(unit) {
			continue
		}
		if rule.UnitID != nil {
			if betterRule(rule, unitRule) {
				unitRule = rule
			}
		} else if betterRule(rule, typeRule) {
			typeRule = rule
		}
	}

	if unitRule != nil {
		return unitRule.Price, SourceUnitOverride
	}
	if typeRule != nil {
		return typeRule.Price, SourceTypeOverride
	}
	return unit.BasePrice, SourceBaseRate
}

// NightlyPrices resolves every night of [checkIn, checkOut) in date order.
func NightlyPrices(unit *models.Unit, checkIn, checkOut time.Time, rules []models.PricingRule) []NightlyPrice {
	var nights []NightlyPrice
	for night := checkIn; night.Before(checkOut); night = utils.NextDay(night) {
		price, source := ResolveNightlyPrice(unit, night, rules)
		nights = append(nights, NightlyPrice{Date: night, Price: price, Source: source})
	}
	return nights
}

// ComputeStayTotal sums the nightly prices of [checkIn, checkOut). The check-out
// day itself is never charged. The result is snapshotted on the booking at
// creation time; rule changes never reprice existing bookings.
func ComputeStayTotal(unit *models.Unit, checkIn, checkOut time.Time, rules []models.PricingRule) (float64, error) {
	if !checkOut.After(checkIn) {
		return 0, ErrInvalidDateRange
	}
	var total float64
	for _, night := range NightlyPrices(unit, checkIn, checkOut, rules) {
		total += night.Price
	}
	return total, nil
}

// BuildBreakdown run-length groups the nightly price sequence: consecutive
// nights merge while price and source are unchanged. The grouped subtotals
// always sum to the same value ComputeStayTotal returns for the same inputs.
func BuildBreakdown(unit *models.Unit, checkIn, checkOut time.Time, rules []models.PricingRule) []BreakdownGroup {
	var groups []BreakdownGroup
	for _, night := range NightlyPrices(unit, checkIn, checkOut, rules) {
		if n := len(groups); n > 0 {
			last := &groups[n-1]
			if last.Source == night.Source && last.UnitPrice == night.Price {
				last.Nights++
				last.Subtotal += night.Price
				last.EndDate = night.Date
				continue
			}
		}
		groups = append(groups, BreakdownGroup{
			Source:    night.Source,
			UnitPrice: night.Price,
			Nights:    1,
			Subtotal:  night.Price,
			StartDate: night.Date,
			EndDate:   night.Date,
		})
	}
	return groups
}

// RulesForStay loads the pricing rules that could affect any night of the stay:
// scope matches the unit or its type and the date ranges overlap.
func (s *PricingService) RulesForStay(unit *models.Unit, checkIn, checkOut time.Time) ([]models.PricingRule, error) {
	var rules []models.PricingRule
	err := s.DB.
		Where("(unit_id = ? OR (unit_id IS NULL AND unit_type = ?))", unit.ID, unit.Type).
		Where("start_date < ? AND end_date >= ?", checkOut, checkIn).
		Find(&rules).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load pricing rules: %w", err)
	}
	return rules, nil
}

// Quote computes total and breakdown for a prospective stay.
func (s *PricingService) Quote(unitID uint, checkIn, checkOut time.Time) (float64, []BreakdownGroup, error) {
	if !checkOut.After(checkIn) {
		return 0, nil, ErrInvalidDateRange
	}

	var unit models.Unit
	if err := s.DB.First(&unit, unitID).Error; err != nil {
		if isNotFound(err) {
			return 0, nil, ErrUnitNotFound
		}
		return 0, nil, fmt.Errorf("failed to find unit: %w", err)
	}

	rules, err := s.RulesForStay(&unit, checkIn, checkOut)
	if err != nil {
		return 0, nil, err
	}

	total, err := ComputeStayTotal(&unit, checkIn, checkOut, rules)
	if err != nil {
		return 0, nil, err
	}
	return total, BuildBreakdown(&unit, checkIn, checkOut, rules), nil
}

// CreateRule validates and stores a new pricing rule. Exactly one scope must be
// set and the date range must not be inverted; rules are never edited in place.
func (s *PricingService) CreateRule(rule models.PricingRule) (models.PricingRule, error) {
	if rule.EndDate.Before(rule.StartDate) {
		return models.PricingRule{}, ErrInvalidDateRange
	}
	if rule.Price < 0 {
		return models.PricingRule{}, ErrInvalidAmount
	}
	if (rule.UnitID == nil) == (rule.UnitType == "") {
		return models.PricingRule{}, ErrInvalidRuleScope
	}

	if rule.UnitID != nil {
		var unit models.Unit
		if err := s.DB.First(&unit, *rule.UnitID).Error; err != nil {
			if isNotFound(err) {
				return models.PricingRule{}, ErrUnitNotFound
			}
			return models.PricingRule{}, fmt.Errorf("failed to find unit: %w", err)
		}
	}

	if err := s.DB.Create(&rule).Error; err != nil {
		return models.PricingRule{}, fmt.Errorf("failed to create pricing rule: %w", err)
	}
	return rule, nil
}

func (s *PricingService) ListRules() ([]models.PricingRule, error) {
	var rules []models.PricingRule
	err := s.DB.Preload("Unit").Order("created_at DESC").Find(&rules).Error
	return rules, err
}

func (s *PricingService) DeleteRule(id uint) error {
	res := s.DB.Delete(&models.PricingRule{}, id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete pricing rule: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrRuleNotFound
	}
	return nil
}
