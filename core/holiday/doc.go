// Package holiday resolves calendar dates to a holiday severity factor.
//
// A Calendar maps dates to raw holiday names. The bundled India table covers
// 2024 through 2029 and can be replaced with a YAML file of the same shape:
//
//	"2025-10-20": Diwali
//	"2025-10-02": Gandhi Jayanti, Dussehra
//
// A Resolver classifies the first label of a holiday name against an ordered
// list of keyword tiers. The first matching tier wins.
package holiday
