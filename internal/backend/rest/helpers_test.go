package rest_test

import "time"

var testNow = time.Date(2019, time.March, 5, 9, 0, 0, 0, time.UTC)
