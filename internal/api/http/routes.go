package httpapi

import (
	"errors"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/saadsfaoui/cityscope/internal/city"
)

var validate = validator.New()

// RegisterRoutes wires the HTTP handlers into the Fiber app. The session
// serves the single-city flows (overview, search); the aggregator serves
// the comparator, which must not trip the session staleness guard.
func RegisterRoutes(app *fiber.App, agg *city.Aggregator, sess *city.Session, resolver *city.Resolver) {
	v1 := app.Group("/api/v1")

	v1.Get("/cities", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"cities": resolver.Seeds(),
		})
	})

	v1.Get("/city/overview", func(c *fiber.Ctx) error {
		req, err := parseOverviewQuery(c)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		ov, err := sess.Aggregate(c.Context(), req.toQuery())
		if err != nil {
			return mapAggregateError(err)
		}

		return c.JSON(ov)
	})

	v1.Get("/search", func(c *fiber.Ctx) error {
		var req searchQuery
		req.Q = c.Query("q")
		if err := validate.Struct(req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		res, ov, err := sess.Search(c.Context(), req.Q)
		if err != nil {
			return mapAggregateError(err)
		}

		return c.JSON(fiber.Map{
			"resolved": res,
			"overview": ov,
		})
	})

	v1.Get("/compare", func(c *fiber.Ctx) error {
		var req compareQuery
		req.First = c.Query("first")
		req.Second = c.Query("second")
		if err := validate.Struct(req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		var (
			wg        sync.WaitGroup
			first     *city.Overview
			second    *city.Overview
			errFirst  error
			errSecond error
		)

		wg.Add(2)
		go func() {
			defer wg.Done()
			first, errFirst = agg.Aggregate(c.Context(), city.Query{City: req.First})
		}()
		go func() {
			defer wg.Done()
			second, errSecond = agg.Aggregate(c.Context(), city.Query{City: req.Second})
		}()
		wg.Wait()

		if errFirst != nil {
			return mapAggregateError(errFirst)
		}
		if errSecond != nil {
			return mapAggregateError(errSecond)
		}

		return c.JSON(fiber.Map{
			"first":  first,
			"second": second,
		})
	})
}

func mapAggregateError(err error) error {
	switch {
	case errors.Is(err, city.ErrCityNotFound):
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	case errors.Is(err, city.ErrSuperseded):
		return fiber.NewError(fiber.StatusConflict, err.Error())
	default:
		return fiber.NewError(fiber.StatusInternalServerError, "failed to aggregate city data")
	}
}

// overviewQuery holds query parameters for the overview endpoint.
type overviewQuery struct {
	City string `validate:"required"`
	Lat  *float64
	Lon  *float64 `validate:"required_with=Lat"`
}

func (o overviewQuery) toQuery() city.Query {
	return city.Query{
		City: o.City,
		Lat:  o.Lat,
		Lon:  o.Lon,
	}
}

func parseOverviewQuery(c *fiber.Ctx) (overviewQuery, error) {
	var q overviewQuery

	q.City = c.Query("city")
	if raw := c.Query("lat"); raw != "" {
		lat := c.QueryFloat("lat")
		q.Lat = &lat
	}
	if raw := c.Query("lon"); raw != "" {
		lon := c.QueryFloat("lon")
		q.Lon = &lon
	}

	if err := validate.Struct(q); err != nil {
		return q, err
	}

	return q, nil
}

// searchQuery holds the free-text search parameter.
type searchQuery struct {
	Q string `validate:"required"`
}

// compareQuery holds the two city names to compare. They must differ.
type compareQuery struct {
	First  string `validate:"required"`
	Second string `validate:"required,nefield=First"`
}
