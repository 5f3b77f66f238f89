package cmd

import (
	"dispatch/internal/adapters/out/postgres"
	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/application/usecases/queries"

	"gorm.io/gorm"
)

// CompositionRoot wires command and query handlers to the persistence layer.
type CompositionRoot struct {
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
}

// NewCompositionRoot creates the composition root over an open database connection.
func NewCompositionRoot(_ Config, gormDB *gorm.DB) CompositionRoot {
	return CompositionRoot{
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
	}
}

func (c *CompositionRoot) CreateCreateCourierCommandHandler() commands.CreateCourierCommandHandler {
	var f commands.CourierUoWFactory = FuncCourierUoWFactory(func() commands.CourierUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateCourierCommandHandler(f)
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateOrderCommandHandler(f)
}

func (c *CompositionRoot) CreateDispatchOrdersCommandHandler() commands.DispatchOrdersCommandHandler {
	var f commands.DispatchUoWFactory = FuncDispatchUoWFactory(func() commands.DispatchUoW {
		return c.uowFactory.Create()
	})
	return commands.NewDispatchOrdersCommandHandler(f)
}

func (c *CompositionRoot) CreateCompleteOrderCommandHandler() commands.CompleteOrderCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewCompleteOrderCommandHandler(f)
}

func (c *CompositionRoot) CreateUpdateCourierCommandHandler() commands.UpdateCourierCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewUpdateCourierCommandHandler(f)
}

func (c *CompositionRoot) CreateGetCourierQueryHandler() queries.GetCourierQueryHandler {
	return queries.NewGetCourierQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetUnassignedOrdersQueryHandler() queries.GetUnassignedOrdersQueryHandler {
	return queries.NewGetUnassignedOrdersQueryHandler(c.gormDB)
}

type FuncCourierUoWFactory func() commands.CourierUoW

func (f FuncCourierUoWFactory) Create() commands.CourierUoW {
	return f()
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncDispatchUoWFactory func() commands.DispatchUoW

func (f FuncDispatchUoWFactory) Create() commands.DispatchUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
