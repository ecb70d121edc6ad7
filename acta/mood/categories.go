package mood

// Category is a background-music style for a news mood.
type Category struct {
	Name       string
	AudioBrief string
}

// Categories maps category id to its music style. Ids 21 and 22 are the
// valence and absolute-neutrality fallbacks.
var Categories = map[int]Category{
	1:  {"Breaking News (High Alert/Surprise)", "Rapid, muted piano octaves with a soft, organic heartbeat pulse. Urgent but not alarming."},
	2:  {"Investigative Report (Deep Focus/Intrigue)", "A rhythmic, low-register cello ostinato with light metallic ticking. Studious and persistent."},
	3:  {"Political Reform (Diplomacy/Optimism)", "Mid-tempo acoustic guitar and light orchestral swells. Warm, professional, forward-looking."},
	4:  {"Conflict & Crisis (Solemnity/Grief)", "Sustained, high-register strings with a deep, slow bass note. Mournful but dignifying."},
	5:  {"Economic Trends (Stability/Analytical)", `Clean, "plucky" electric guitar with plenty of air. Crisp, modern, emotionally neutral.`},
	6:  {"Environmental Crisis (Concern/Melancholy)", "Ethereal woodwinds over low, resonant synth pads. Vast, reflective, slightly lonely."},
	7:  {"Scientific Breakthrough (Wonder/Curiosity)", `Shimmering "glassy" mallet percussion (marimba-like). Bright, precise, intellectually exciting.`},
	8:  {"Humanitarian Profile (Empathy/Resilience)", "Solo acoustic piano melody with slight reverb. Vulnerable, intimate, inspiring."},
	9:  {"Social Justice & Rights (Tension/Conviction)", "Distant cinematic drums with a steady, rising violin line. Serious, purposeful."},
	10: {"Technology & Future (Innovation/Pace)", "Minimalist glitch beats with warm Rhodes piano. Tech-focused but friendly."},
	11: {"Health & Wellness (Reassurance/Care)", "Gentle, flowing piano arpeggios. Safe, clean, comforting."},
	12: {"Local Community (Neighborly/Familiar)", "Light, folky instrumentation with brushes on drums. Grounded and everyday."},
	13: {"Sports Commentary (Energy/Achievement)", "Driving rhythmic percussion without epic brass. Energetic and athletic."},
	14: {"Global Summits (Formal/Procedural)", "Stately, rhythmic orchestral patterns. Polished prestige, not aggressive."},
	15: {"Arts & Culture (Sophistication/Whimsy)", "Pizzicato strings and light woodwinds. Playful, intellectual, rhythmic."},
	16: {"Crime & Justice (Judgment/Caution)", "Low, distorted piano hits with slow electronic sub-bass. Dark, sober, heavy-footed."},
	17: {"Education & Youth (Potential/Development)", "Bright toy-like percussion (glockenspiel) with steady bass. Youthful but structured."},
	18: {"Obituary or Tribute (Memory/Honor)", "A singular, repeating cello note with a soft choral pad. Gracious, quiet, final."},
	19: {"Weather & Nature (Movement/Awe)", "Rapid, cascading piano notes like rain. Fluid, natural, dynamic."},
	20: {"Opinion & Editorial (Dialogue/Persuasion)", "Walking bassline with jazz-adjacent drums. Conversational, thoughtful."},
	21: {"Fallback 1 (Valence (+/-) Generalization)", "Professional ambiguity with restrained timpani fourths/fifths and steady piano eighths."},
	22: {"Fallback 2 (Absolute Neutrality)", "Mid-register strings with slow bass and clean electronic pointers."},
}
