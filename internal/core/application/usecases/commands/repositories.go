// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, transaction management, and persistence.
package commands

import (
	"context"

	"washday/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
// Each handler declares the narrowest repository set it needs, so the mocks in
// tests stay small and the composition root wires one concrete unit of work
// behind all of them.
type (
	// TxManager handles database transaction lifecycle.
	// Ensures atomic operations across multiple repository calls.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// OrderRepoFactory provides access to the order repository within a transaction.
	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// LaundromatRepoFactory provides access to the laundromat repository within a transaction.
	LaundromatRepoFactory interface {
		LaundromatRepository() ports.LaundromatRepository
	}

	// CustomerRepoFactory provides access to the customer repository within a transaction.
	CustomerRepoFactory interface {
		CustomerRepository() ports.CustomerRepository
	}

	// NotificationRepoFactory provides access to the notification outbox within a transaction.
	NotificationRepoFactory interface {
		NotificationRepository() ports.NotificationRepository
	}

	// CreateOrderUoW spans every aggregate the intake flow touches: the
	// customer record, the capacity ledger, the new order and its queued
	// notification all commit or roll back together.
	CreateOrderUoW interface {
		TxManager
		OrderRepoFactory
		LaundromatRepoFactory
		CustomerRepoFactory
		NotificationRepoFactory
	}

	// CreateOrderUoWFactory creates unit of work instances for order intake.
	CreateOrderUoWFactory interface {
		Create() CreateOrderUoW
	}

	// OrderUoW manages transactions for status transitions: the order write
	// and its outbox entry share one transaction.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
		NotificationRepoFactory
	}

	// OrderUoWFactory creates unit of work instances for order transitions.
	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// CancelOrderUoW adds the capacity ledger to the transition set, so a
	// pre-pickup cancellation can give the pickup slot back atomically.
	CancelOrderUoW interface {
		TxManager
		OrderRepoFactory
		LaundromatRepoFactory
		NotificationRepoFactory
	}

	// CancelOrderUoWFactory creates unit of work instances for cancellations.
	CancelOrderUoWFactory interface {
		Create() CancelOrderUoW
	}

	// NotificationUoW manages transactions that only touch the outbox,
	// used when delivery attempts are recorded after the order commit.
	NotificationUoW interface {
		TxManager
		NotificationRepoFactory
	}

	// NotificationUoWFactory creates unit of work instances for outbox updates.
	NotificationUoWFactory interface {
		Create() NotificationUoW
	}
)
