package seeder

func Defaults() []Seeder {
	return []Seeder{
		SchemaCheck{},
		QuestionnaireSeeder{},
	}
}
