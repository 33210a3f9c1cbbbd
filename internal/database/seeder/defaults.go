package seeder

import "jobconnect/internal/catalog"

func Defaults() []Seeder {
	return []Seeder{
		SampleJobsSeeder{Jobs: catalog.SampleJobs()},
	}
}
