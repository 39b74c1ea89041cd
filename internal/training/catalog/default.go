package catalog

var defaultGroups = map[string][]Exercise{
	GroupDelts: {
		{"Lateral Raise", Weight(20)},
		{"Arnold Press", Weight(30)},
		{"Military Press", Weight(30)},
		{"Rear Delt Row", Weight(25)},
		{"Face Pull", Weight(20)},
		{"Hip Huggers", Weight(25)},
		{"Front Raise", Weight(20)},
		{"Shoulder Press", Weight(45)},
	},
	GroupChest: {
		{"Pushups", Weight(0)},
		{"Floor Fly", Weight(25)},
		{"Pullovers", Weight(35)},
		{"Cross Overs", Weight(20)},
		{"Bench Press", Weight(100)},
		{"Incline Bench Press", Weight(70)},
		{"Center Press", Weight(40)},
	},
	GroupBiceps: {
		{"Zottman Curls", Weight(20)},
		{"Preacher Curls", Weight(40)},
		{"Drag Curls", Weight(40)},
		{"Waiter Curls", Weight(30)},
		{"Incline Curls", Weight(20)},
		{"DB Curls", Weight(20)},
		{"Reverse Curls", Weight(15)},
		{"Hammer Curls", Weight(20)},
	},
	GroupButt: {
		{"Goblet Squat", Weight(45)},
		{"Sumo Squat", Weight(50)},
		{"Step-ups", Weight(25)},
		{"Deadlift", Weight(115)},
		{"Squat", Weight(115)},
	},
	GroupBackLats: {
		{"Single Arm Row", Weight(25)},
		{"Dumbell Pullover", Weight(35)},
		{"Seal Row", Weight(30)},
		{"Incline Row", Weight(25)},
		{"Lat Pull Down", Weight(20)},
		{"Shrugs", Weight(125)},
	},
	GroupBackMids: {
		{"Around the World", Weight(20)},
		{"Scap Squeeze", Weight(100)},
		{"Landmind Row", Weight(70)},
		{"Supinated Row", Weight(80)},
	},
	GroupBackLower: {
		{"Good Mornings", Weight(100)},
		{"Rack Pull", Weight(125)},
		{"Stiff Leg Deadlift", Weight(115)},
		{"Back Extension", Weight(25)},
	},
	GroupBackCombo: {
		{"DB Lift March", Weight(30)},
		{"Gorilla Row", Weight(25)},
		{"Renegade Row", Weight(10)},
		{"Dead Row", Weight(80)},
		{"Inverted Row (like a pullup)", Weight(0)},
		{"Farmer Walke", Weight(40)},
	},
	GroupAbsUpper: {
		{"Around the world", Weight(25)},
		{"Side Bend", Weight(35)},
		{"Standing Twist", Weight(10)},
		{"Figure 8's", Weight(15)},
		{"Standing Crunch", Weight(20)},
		{"Hip Dip", Weight(0)},
		{"Spider Plank", Weight(15)},
	},
	GroupAbsLower: {
		{"Side-to-Side", Gear("ankle weights")},
		{"Up-and-Over", Gear("ankle weights")},
		{"Cross Taps", Weight(10)},
		{"Reverse Crunches", Weight(0)},
		{"Butterflies", Weight(0)},
		{"Side Crunches", Weight(0)},
		{"Heel Touches", Weight(0)},
	},
	GroupAbsCombo: {
		{"Side Carry", Weight(40)},
		{"Bridge March", Weight(35)},
		{"Spider Pulls", Weight(15)},
	},
	GroupTriceps: {
		{"Pull Downs", Gear("cables")},
		{"Reverse Grip Pull Downs", Gear("cables")},
		{"Kickback", Weight(25)},
		{"Lying Tricep Extension - Pulse", Weight(10)},
		{"Lying Tricep Extension - In and Out", Weight(10)},
		{"Skull Crushers", Weight(40)},
		{"Narrow Grip Bench Press", Weight(60)},
	},
	GroupCalves: {
		{"Standing", Weight(30)},
		{"Seated", Weight(30)},
		{"Bent Knee", Weight(30)},
		{"Wide", Weight(30)},
		{"Inner (toes pointed in)", Weight(30)},
		{"Single", Weight(30)},
		{"Box Raise", Weight(30)},
	},
	GroupThighs: {
		{"Clam Shells", Gear("band")},
		{"Leg Extensions", Gear("ankle weights")},
		{"Side Lunge", Weight(15)},
		{"Fire Hydrant/Donkey Kick", Gear("band")},
		{"Curtsey Lunge", Weight(10)},
		{"Scissor Kick", Gear("ankle weights")},
		{"Bridges", Weight(100)},
	},
}

// Default returns the built-in exercise catalog.
func Default() *Catalog {
	return New(defaultGroups)
}
