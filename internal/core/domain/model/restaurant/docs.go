// Package restaurant models the part of a restaurant the ordering core reads:
// its identity, whether it currently accepts orders, and the catalog of
// products with their authoritative names and prices.
//
// Restaurants are not persisted by the ordering core. They are looked up per
// order for the restaurant id and the set of product ids the customer submitted.
package restaurant
