package quizgen

// Фиксированные пулы дистракторов и шаблонов. Используются, когда
// соседних слов в словаре не хватает, чтобы собрать 4 варианта ответа.

// genericMeanings — запасные GRE-определения для вопросов типа meaning
var genericMeanings = []string{
	"to make less effective or diminish gradually",
	"relating to or characterized by complexity",
	"showing lack of proper consideration or care",
	"having an excessively elevated opinion",
	"characterized by a lack of clarity or precision",
	"to express disapproval or criticism strongly",
}

// genericWords — запасные слова продвинутого уровня для вопросов типа synonym
var genericWords = []string{
	"ubiquitous", "ephemeral", "pragmatic", "verbose",
	"benevolent", "malicious", "obscure", "lucid",
}

// genericOpposites — запасные слова-противоположности для вопросов типа antonym
var genericOpposites = []string{
	"harmonious", "transparent", "meticulous", "indifferent",
	"steadfast", "conciliatory", "flamboyant", "reticent",
}

// completionTemplates — предложения с пропуском для вопросов типа completion
var completionTemplates = []string{
	"The scholar's research was notably _____, demonstrating exceptional insight and thorough analysis.",
	"Critics described the author's style as remarkably _____, setting it apart from contemporary works.",
	"The committee's _____ approach to the problem earned praise from all stakeholders.",
	"Her _____ behavior during the crisis revealed her true character and leadership abilities.",
	"The politician's speech was surprisingly _____, affecting public opinion significantly.",
	"The artist's work remained _____ throughout the decades, maintaining its original vision.",
	"Despite the challenges, the team remained _____ in their pursuit of excellence.",
	"The professor's lectures were consistently _____, engaging students with complex ideas.",
	"The organization's _____ policies reflected modern understanding of social dynamics.",
	"His _____ manner of speaking made even difficult concepts accessible to students.",
}
