// Package services contains stateless domain services that coordinate
// behavior across aggregates. The LaundromatRouter implements the routing
// resolver: given a pickup postal code and the day's remaining capacity, it
// deterministically picks the laundromat that should take the order.
package services
