package recommend

// Answer values
const (
	Yes = "si"
	No  = "no"

	IncomeLow     = "<15000"
	IncomeLowMid  = "15000-25000"
	IncomeMid     = "25000-40000"
	IncomeHighMid = "40000-75000"
	IncomeHigh    = ">75000"
	IncomeStudent = "estudiante"
)

// questions
const (
	qIncome        = "¿Cuál es tu nivel de ingresos anuales en tu hogar?"
	qNoise         = "¿Te preocupa la contaminación acústica en el lugar donde vives?"
	qHouse         = "¿Prefieres vivir en una casa antes que en un piso?"
	qEntertainment = "¿Prefieres vivir en un barrio con muchas opciones de entretenimiento como cines y centros comerciales?"
	qTransit       = "¿Es fundamental que tu barrio tenga buenas conexiones con el transporte público?"
	qSport         = "¿Practicas deporte activamente?"
	qParks         = "¿Prefieres vivir en un barrio con grandes parques al aire libre o no?"
)

func leaf(id string) *Node {
	return &Node{Neighborhood: id}
}

func question(q string, opts ...Option) *Node {
	return &Node{Question: q, Options: opts}
}

func opt(value, label string, next *Node) Option {
	return Option{Value: value, Label: label, Next: next}
}

func noiseQuestion(yes, no *Node) *Node {
	return question(qNoise,
		opt(Yes, "Sí, me preocupa el ruido", yes),
		opt(No, "No me preocupa el ruido", no),
	)
}

func houseQuestion(yes, no *Node) *Node {
	return question(qHouse,
		opt(Yes, "Sí, me gustaría vivir en una casa mejor", yes),
		opt(No, "No, prefiero vivir en un piso", no),
	)
}

func entertainmentQuestion(yes, no *Node) *Node {
	return question(qEntertainment,
		opt(Yes, "Sí, me gustaría tener muchas opciones de entretenimiento", yes),
		opt(No, "No necesito muchas opciones de entretenimiento", no),
	)
}

func buildTree() *Node {
	return question(qIncome,
		opt(IncomeLow, "Menos de 15000",
			noiseQuestion(
				leaf("66151d0bcc0535e96a0e7aed"),
				leaf("66151d0bcc0535e96a0e7aef"),
			),
		),
		opt(IncomeLowMid, "15000-25000",
			houseQuestion(
				leaf("66151d0bcc0535e96a0e7ae7"),
				noiseQuestion(
					leaf("66151d0bcc0535e96a0e7aeb"),
					leaf("66151d0bcc0535e96a0e7ae9"),
				),
			),
		),
		opt(IncomeMid, "25000-40000",
			houseQuestion(
				leaf("661520ab4fe57713db09c86b"),
				noiseQuestion(
					entertainmentQuestion(
						leaf("66151d0bcc0535e96a0e7ae1"),
						leaf("66151d0bcc0535e96a0e7ae3"),
					),
					leaf("66151d0bcc0535e96a0e7ae5"),
				),
			),
		),
		opt(IncomeHighMid, "40000-75000",
			houseQuestion(
				question(qTransit,
					opt(Yes, "Sí, es fundamental", leaf("66151d0bcc0535e96a0e7ad9")),
					opt(No, "No es fundamental", leaf("66151d0bcc0535e96a0e7adb")),
				),
				entertainmentQuestion(
					leaf("66151d0bcc0535e96a0e7add"),
					leaf("66151d0bcc0535e96a0e7adf"),
				),
			),
		),
		opt(IncomeHigh, "Más de 75000",
			houseQuestion(
				question(qEntertainment,
					opt(No, "Prefiero un barrio tranquilo", leaf("66151d0acc0535e96a0e7ad3")),
					opt(Yes, "Prefiero un barrio con mucha actividad social", leaf("66151d0acc0535e96a0e7ad1")),
				),
				question(qSport,
					opt(Yes, "Si hago deporte",
						question(qParks,
							opt(Yes, "Prefiero un barrio con naturaleza", leaf("66151d0acc0535e96a0e7ad5")),
							opt(No, "Prefiero un barrio más concurrido de civilización", leaf("66151d0bcc0535e96a0e7ad7")),
						),
					),
					opt(No, "No practico poco/muy poco deporte",
						question(qNoise,
							opt(Yes, "No quiero ruido", leaf("66151d0acc0535e96a0e7ad5")),
							opt(No, "Me es igual el ruido", leaf("66151d0bcc0535e96a0e7ad7")),
						),
					),
				),
			),
		),
		// TODO: point students at the city-wide listing once it has its own id
		opt(IncomeStudent, "Para estudiantes", leaf("661a8d548821445f3797f221")),
	)
}
