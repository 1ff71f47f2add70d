// Package catalog manages the storefront's products, vendors, inventory,
// and pricing.
//
// Stores are interfaces with two implementations: an in-memory store
// seeded from bundled JSON fixtures (optionally simulating network latency
// for demo and test environments) and a MongoDB-backed store for real
// deployments. Service layers business rules on top: browse filters,
// margin-gated price changes, stock accounting, and image attachment with
// quality scoring and content-addressed blob keys.
//
// Pricing arithmetic lives in pure functions over integer cents, with
// tunable PricingRules instead of fixed constants.
package catalog
