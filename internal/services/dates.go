package services

import (
	"time"

	"gorm.io/gorm"
)

const dayLayout = "2006-01-02"

// day formats t as a local calendar day for comparison against
// DATE(column, 'localtime').
func day(t time.Time) string {
	return t.In(time.Local).Format(dayLayout)
}

// localDate is the SQL expression for the local calendar day of column.
func localDate(column string) string {
	return "DATE(" + column + ", 'localtime')"
}

func applyDateFilter(q *gorm.DB, column string, from, to *time.Time) *gorm.DB {
	if from != nil {
		q = q.Where(localDate(column)+" >= ?", day(*from))
	}
	if to != nil {
		q = q.Where(localDate(column)+" <= ?", day(*to))
	}
	return q
}

func likePattern(search string) string {
	return "%" + search + "%"
}
