// Package db provides database utilities including transaction management and query scopes.
package db

import (
	"gorm.io/gorm"
)

// ActiveOnly is a GORM scope that filters for active records. Merchant
// registrations are never hard-deleted; deactivation flips is_active.
//
// Example usage:
//
//	db.Model(&MerchantRegistrationModel{}).Scopes(db.ActiveOnly()).Where("nmid = ?", nmid)
func ActiveOnly() func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("is_active = ?", true)
	}
}

// OldestFirst orders by ascending primary key. Resolver tie-breaks rely on
// this being deterministic.
func OldestFirst() func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Order("id ASC")
	}
}
