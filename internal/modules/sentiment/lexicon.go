package sentiment

// Valence lexicon for the built-in analyzer, a compact cut of the VADER
// lexicon covering common sentiment-bearing English words. Scores are on
// the usual -4..4 scale.
var lexicon = map[string]float64{
	"abandon": -1.9, "abuse": -3.2, "admire": 2.6, "adorable": 2.2,
	"afraid": -2.0, "aggressive": -1.2, "amazing": 2.8, "angry": -2.3,
	"annoy": -1.7, "anxious": -1.9, "appreciate": 2.0, "awesome": 3.1,
	"awful": -2.0, "bad": -2.5, "beautiful": 2.9, "best": 3.2,
	"better": 1.9, "bless": 2.2, "bored": -1.3, "brilliant": 2.8,
	"broken": -1.8, "calm": 1.3, "careless": -1.5, "charming": 2.4,
	"cheerful": 2.5, "comfort": 1.9, "confident": 2.2, "confused": -1.2,
	"crap": -2.5, "crash": -1.6, "creative": 1.9, "cruel": -2.8,
	"cry": -2.1, "damage": -1.9, "danger": -2.4, "dead": -3.3,
	"delight": 2.9, "depressed": -2.8, "destroy": -2.6, "disappoint": -2.1,
	"disaster": -3.1, "disgust": -2.9, "dislike": -1.6, "dread": -2.3,
	"dull": -1.2, "eager": 1.6, "easy": 1.6, "elegant": 2.1,
	"embarrass": -1.9, "encourage": 2.0, "enjoy": 2.2, "enthusiastic": 2.6,
	"evil": -3.4, "excellent": 2.7, "excited": 2.2, "fail": -2.3,
	"failure": -2.5, "fantastic": 2.6, "fear": -2.2, "fine": 0.8,
	"fool": -1.9, "free": 1.8, "fresh": 1.3, "friendly": 2.2,
	"fun": 2.3, "generous": 2.3, "gentle": 1.9, "glad": 2.0,
	"gloomy": -1.9, "good": 1.9, "gorgeous": 2.6, "grateful": 2.6,
	"great": 3.1, "grief": -2.6, "happy": 2.7, "harm": -2.4,
	"hate": -2.7, "hell": -3.0, "help": 1.7, "honest": 2.3,
	"hope": 1.9, "horrible": -2.5, "hurt": -2.4, "ignore": -1.5,
	"impress": 2.1, "inspire": 2.5, "insult": -2.3, "interest": 2.0,
	"jealous": -2.0, "joy": 2.8, "kill": -3.7, "kind": 2.4,
	"laugh": 2.6, "lazy": -1.4, "like": 1.5, "lonely": -2.2,
	"lose": -1.9, "love": 3.2, "lovely": 2.8, "luck": 1.8,
	"mad": -2.2, "magnificent": 2.9, "mean": -1.7, "miserable": -2.7,
	"miss": -1.4, "mistake": -1.7, "nasty": -2.6, "nice": 1.8,
	"painful": -2.4, "panic": -2.4, "peace": 2.5, "perfect": 2.7,
	"pleasant": 2.3, "pleased": 2.1, "poor": -1.8, "positive": 2.0,
	"pretty": 2.2, "proud": 2.1, "rage": -2.5, "relax": 1.9,
	"rude": -2.0, "sad": -2.1, "safe": 1.8, "scared": -2.2,
	"shame": -2.1, "smart": 1.9, "smile": 2.0, "sorry": -0.3,
	"strong": 2.3, "stupid": -2.4, "succeed": 2.4, "success": 2.7,
	"sweet": 2.0, "terrible": -2.1, "terrific": 2.8, "thank": 1.9,
	"tragedy": -3.4, "trouble": -2.0, "trust": 2.3, "ugly": -2.6,
	"unhappy": -1.9, "useless": -1.8, "warm": 1.6, "weak": -1.9,
	"welcome": 2.0, "win": 2.8, "wonderful": 2.7, "worry": -1.9,
	"worse": -2.1, "worst": -3.1, "wow": 2.8, "wrong": -2.1,
}

// boosters scale the following sentiment word up or down.
var boosters = map[string]float64{
	"absolutely": 0.293, "completely": 0.293, "extremely": 0.293,
	"really": 0.293, "so": 0.293, "totally": 0.293, "very": 0.293,
	"barely": -0.293, "hardly": -0.293, "kind of": -0.293,
	"slightly": -0.293, "somewhat": -0.293,
}

// negations flip the valence of the following sentiment word.
var negations = map[string]bool{
	"not": true, "no": true, "never": true, "neither": true,
	"nobody": true, "none": true, "cannot": true, "cant": true,
	"dont": true, "doesnt": true, "didnt": true, "isnt": true,
	"wasnt": true, "wont": true, "wouldnt": true,
}
