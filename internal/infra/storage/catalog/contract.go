package catalog

import "github.com/m04kA/SMC-DetailingBooking/pkg/dbmetrics"

type DBExecutor = dbmetrics.DBExecutor
