package catalog

import "github.com/example/espbot/pkg/models"

// seedCards is the built-in vocabulary. NextReview is filled in by New.
var seedCards = []models.Flashcard{
	{
		ID:            1,
		Spanish:       "el ordenador",
		English:       "computer",
		Category:      "technology",
		Difficulty:    models.DifficultyEasy,
		Pronunciation: "el or-den-ah-DOR",
		Examples: []models.Example{
			{Spanish: "Uso el ordenador para trabajar", English: "I use the computer to work"},
			{Spanish: "El ordenador está roto", English: "The computer is broken"},
		},
		CommonMistakes: []string{"ordenadura", "computadora (Latin America)"},
	},
	{
		ID:            2,
		Spanish:       "la casa",
		English:       "house",
		Category:      "basic",
		Difficulty:    models.DifficultyEasy,
		Pronunciation: "la KAH-sah",
		Examples: []models.Example{
			{Spanish: "Mi casa es grande", English: "My house is big"},
			{Spanish: "La casa está cerca", English: "The house is nearby"},
		},
	},
	{
		ID:            3,
		Spanish:       "el teléfono",
		English:       "phone",
		Category:      "technology",
		Difficulty:    models.DifficultyEasy,
		Pronunciation: "el te-LE-fo-no",
		Examples: []models.Example{
			{Spanish: "Mi teléfono no funciona", English: "My phone does not work"},
		},
	},
	{
		ID:            4,
		Spanish:       "la pantalla",
		English:       "screen",
		Category:      "technology",
		Difficulty:    models.DifficultyMedium,
		Pronunciation: "la pan-TAH-yah",
		Examples: []models.Example{
			{Spanish: "La pantalla es muy brillante", English: "The screen is very bright"},
		},
	},
	{
		ID:            5,
		Spanish:       "el perro",
		English:       "dog",
		Category:      "animals",
		Difficulty:    models.DifficultyEasy,
		Pronunciation: "el PE-rro",
		Examples: []models.Example{
			{Spanish: "El perro corre en el parque", English: "The dog runs in the park"},
		},
	},
	{
		ID:            6,
		Spanish:       "el gato",
		English:       "cat",
		Category:      "animals",
		Difficulty:    models.DifficultyEasy,
		Pronunciation: "el GAH-toh",
		Examples: []models.Example{
			{Spanish: "El gato duerme todo el día", English: "The cat sleeps all day"},
		},
	},
	{
		ID:            7,
		Spanish:       "comer",
		English:       "to eat",
		Category:      "verbs",
		Difficulty:    models.DifficultyEasy,
		Pronunciation: "ko-MER",
		Examples: []models.Example{
			{Spanish: "Me gusta comer paella", English: "I like to eat paella"},
		},
	},
	{
		ID:            8,
		Spanish:       "beber",
		English:       "to drink",
		Category:      "verbs",
		Difficulty:    models.DifficultyEasy,
		Pronunciation: "be-BER",
		Examples: []models.Example{
			{Spanish: "Quiero beber agua", English: "I want to drink water"},
		},
	},
	{
		ID:            9,
		Spanish:       "correr",
		English:       "to run",
		Category:      "verbs",
		Difficulty:    models.DifficultyMedium,
		Pronunciation: "ko-RRER",
		Examples: []models.Example{
			{Spanish: "Voy a correr por la mañana", English: "I am going to run in the morning"},
		},
		CommonMistakes: []string{"correr vs. corer (single r changes the sound)"},
	},
	{
		ID:            10,
		Spanish:       "desarrollar",
		English:       "to develop",
		Category:      "verbs",
		Difficulty:    models.DifficultyHard,
		Pronunciation: "des-ah-rro-YAR",
		Examples: []models.Example{
			{Spanish: "Quiero desarrollar una aplicación", English: "I want to develop an application"},
		},
	},
	{
		ID:            11,
		Spanish:       "la manzana",
		English:       "apple",
		Category:      "food",
		Difficulty:    models.DifficultyEasy,
		Pronunciation: "la man-SAH-nah",
		Examples: []models.Example{
			{Spanish: "La manzana está madura", English: "The apple is ripe"},
		},
	},
	{
		ID:            12,
		Spanish:       "el pan",
		English:       "bread",
		Category:      "food",
		Difficulty:    models.DifficultyEasy,
		Pronunciation: "el PAHN",
		Examples: []models.Example{
			{Spanish: "Compro pan todos los días", English: "I buy bread every day"},
		},
	},
	{
		ID:            13,
		Spanish:       "el desayuno",
		English:       "breakfast",
		Category:      "food",
		Difficulty:    models.DifficultyMedium,
		Pronunciation: "el de-sah-YOO-noh",
		Examples: []models.Example{
			{Spanish: "El desayuno es la comida más importante", English: "Breakfast is the most important meal"},
		},
	},
	{
		ID:            14,
		Spanish:       "hermoso",
		English:       "beautiful",
		Category:      "adjectives",
		Difficulty:    models.DifficultyMedium,
		Pronunciation: "er-MOH-soh",
		Examples: []models.Example{
			{Spanish: "Qué día tan hermoso", English: "What a beautiful day"},
		},
		CommonMistakes: []string{"hermosa for masculine nouns"},
	},
	{
		ID:            15,
		Spanish:       "rápido",
		English:       "fast",
		Category:      "adjectives",
		Difficulty:    models.DifficultyEasy,
		Pronunciation: "RAH-pee-doh",
		Examples: []models.Example{
			{Spanish: "El tren es muy rápido", English: "The train is very fast"},
		},
	},
	{
		ID:            16,
		Spanish:       "difícil",
		English:       "difficult",
		Category:      "adjectives",
		Difficulty:    models.DifficultyMedium,
		Pronunciation: "dee-FEE-seel",
		Examples: []models.Example{
			{Spanish: "El examen fue difícil", English: "The exam was difficult"},
		},
	},
	{
		ID:            17,
		Spanish:       "el aeropuerto",
		English:       "airport",
		Category:      "travel",
		Difficulty:    models.DifficultyMedium,
		Pronunciation: "el ah-eh-ro-PWER-toh",
		Examples: []models.Example{
			{Spanish: "El aeropuerto está lejos del centro", English: "The airport is far from the center"},
		},
	},
	{
		ID:            18,
		Spanish:       "el billete",
		English:       "ticket",
		Category:      "travel",
		Difficulty:    models.DifficultyMedium,
		Pronunciation: "el bee-YEH-teh",
		Examples: []models.Example{
			{Spanish: "Necesito un billete de ida y vuelta", English: "I need a round-trip ticket"},
		},
		CommonMistakes: []string{"boleto (Latin America)"},
	},
	{
		ID:            19,
		Spanish:       "la maleta",
		English:       "suitcase",
		Category:      "travel",
		Difficulty:    models.DifficultyEasy,
		Pronunciation: "la mah-LEH-tah",
		Examples: []models.Example{
			{Spanish: "Mi maleta pesa demasiado", English: "My suitcase weighs too much"},
		},
	},
	{
		ID:            20,
		Spanish:       "buenos días",
		English:       "good morning",
		Category:      "basic",
		Difficulty:    models.DifficultyEasy,
		Pronunciation: "BWEH-nos DEE-as",
		Examples: []models.Example{
			{Spanish: "Buenos días, ¿cómo estás?", English: "Good morning, how are you?"},
		},
	},
}
