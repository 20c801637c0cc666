// Package metrics exposes Prometheus counters for the employee feature.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	EmployeesCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "kader_employees_created_total",
		Help: "Number of employee records created.",
	})

	EmployeesDeactivated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "kader_employees_deactivated_total",
		Help: "Number of employee records soft-deleted.",
	})

	EmployeesActivated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "kader_employees_activated_total",
		Help: "Number of employee records reactivated.",
	})

	PasswordsReset = promauto.NewCounter(prometheus.CounterOpts{
		Name: "kader_employee_passwords_reset_total",
		Help: "Number of administrative password resets.",
	})

	BirthFieldsDerived = promauto.NewCounter(prometheus.CounterOpts{
		Name: "kader_employee_birth_fields_derived_total",
		Help: "Number of times date of birth or gender was derived from a national ID.",
	})
)
