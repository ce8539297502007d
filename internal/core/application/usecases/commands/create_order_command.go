package commands

import (
	"errors"
	"time"

	"washday/internal/core/domain/model/kernel"
	"washday/internal/core/domain/model/order"
	"washday/internal/pkg/guard"
)

var (
	ErrCreateOrderCommandIsNotConstructed = errors.New(
		"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
	)
	ErrCustomerNameIsRequired  = errors.New("customer name is required")
	ErrCustomerEmailIsRequired = errors.New("customer email is required")
	ErrPickupDateIsRequired    = errors.New("pickup date is required")
)

// CreateOrderCommand represents a request to schedule a laundry pickup.
// Carries the customer contact details, both address snapshots, the service
// selection and the requested pickup slot.
//
// Example:
//
//	cmd, err := NewCreateOrderCommand(kernel.NewUUID(), "Ada Smith", "ada@example.com",
//	    "+14155550101", pickup, delivery, order.ServiceWashFold, 20, pickupDate,
//	    order.WindowMorning, addOns)
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("failed to create order: %w", err)
//	}
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID         kernel.UUID
	customerName    string
	customerEmail   string
	customerPhone   string
	pickupAddress   order.Address
	deliveryAddress order.Address
	serviceType     order.ServiceType
	declaredPounds  int
	pickupDate      time.Time
	timeWindow      order.TimeWindow
	addOns          kernel.Money

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand creates a command to schedule a new pickup order.
// Validates identifiers, contact details, both addresses and the service
// selection. Returns an error if any validation fails.
func NewCreateOrderCommand(
	orderID kernel.UUID,
	customerName string,
	customerEmail string,
	customerPhone string,
	pickupAddress order.Address,
	deliveryAddress order.Address,
	serviceType order.ServiceType,
	declaredPounds int,
	pickupDate time.Time,
	timeWindow order.TimeWindow,
	addOns kernel.Money,
) (CreateOrderCommand, error) {
	orderCommand := CreateOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		orderCommand.setOrderID(orderID),
		orderCommand.setCustomer(customerName, customerEmail, customerPhone),
		orderCommand.setAddresses(pickupAddress, deliveryAddress),
		orderCommand.setService(serviceType, declaredPounds, addOns),
		orderCommand.setSchedule(pickupDate, timeWindow),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return orderCommand, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

// OrderID returns the client-generated identifier for the new order.
func (c CreateOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// CustomerName returns the contact name on the order.
func (c CreateOrderCommand) CustomerName() string {
	return c.customerName
}

// CustomerEmail returns the contact email, used for customer lookup.
func (c CreateOrderCommand) CustomerEmail() string {
	return c.customerEmail
}

// CustomerPhone returns the contact phone number.
func (c CreateOrderCommand) CustomerPhone() string {
	return c.customerPhone
}

// PickupAddress returns the address the driver collects from.
func (c CreateOrderCommand) PickupAddress() order.Address {
	return c.pickupAddress
}

// DeliveryAddress returns the address the clean laundry returns to.
func (c CreateOrderCommand) DeliveryAddress() order.Address {
	return c.deliveryAddress
}

// ServiceType returns the selected service.
func (c CreateOrderCommand) ServiceType() order.ServiceType {
	return c.serviceType
}

// DeclaredPounds returns the customer's weight estimate.
func (c CreateOrderCommand) DeclaredPounds() int {
	return c.declaredPounds
}

// PickupDate returns the requested pickup day.
func (c CreateOrderCommand) PickupDate() time.Time {
	return c.pickupDate
}

// TimeWindow returns the requested pickup window.
func (c CreateOrderCommand) TimeWindow() order.TimeWindow {
	return c.timeWindow
}

// AddOns returns the priced extras selected at checkout.
func (c CreateOrderCommand) AddOns() kernel.Money {
	return c.addOns
}

func (c *CreateOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *CreateOrderCommand) setCustomer(name, email, phone string) error {
	if name == "" {
		return ErrCustomerNameIsRequired
	}
	if email == "" {
		return ErrCustomerEmailIsRequired
	}

	c.customerName = name
	c.customerEmail = email
	c.customerPhone = phone
	return nil
}

func (c *CreateOrderCommand) setAddresses(pickup, delivery order.Address) error {
	if err := pickup.Validate(); err != nil {
		return err
	}
	if err := delivery.Validate(); err != nil {
		return err
	}

	c.pickupAddress = pickup
	c.deliveryAddress = delivery
	return nil
}

func (c *CreateOrderCommand) setService(serviceType order.ServiceType, declaredPounds int, addOns kernel.Money) error {
	if err := serviceType.Validate(); err != nil {
		return err
	}
	if err := addOns.Validate(); err != nil {
		return err
	}

	c.serviceType = serviceType
	c.declaredPounds = declaredPounds
	c.addOns = addOns
	return nil
}

func (c *CreateOrderCommand) setSchedule(pickupDate time.Time, timeWindow order.TimeWindow) error {
	if pickupDate.IsZero() {
		return ErrPickupDateIsRequired
	}
	if err := timeWindow.Validate(); err != nil {
		return err
	}

	c.pickupDate = pickupDate
	c.timeWindow = timeWindow
	return nil
}
