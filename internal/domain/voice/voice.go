package voice

import (
	"fmt"
	"strconv"
)

type Gender string

const (
	Male   Gender = "male"
	Female Gender = "female"
	Any    Gender = "any"
)

// Category is the closed set of delivery styles a profile is tuned for.
type Category string

const (
	CategoryDoc       Category = "doc"
	CategoryAds       Category = "ads"
	CategoryCartoon   Category = "cartoon"
	CategoryPodcast   Category = "podcast"
	CategoryNovels    Category = "novels"
	CategoryYoutube   Category = "youtube"
	CategoryDrama     Category = "drama"
	CategoryEdu       Category = "edu"
	CategoryCorporate Category = "corporate"
)

// Profile is a read-only catalog entry describing one synthetic voice.
type Profile struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Dialect     string   `json:"dialect"`
	Gender      Gender   `json:"gender"`
	VoiceType   string   `json:"voice_type"`
	Category    Category `json:"category"`
	Description string   `json:"description"`
}

type Dialect struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

var Dialects = []Dialect{
	{ID: "fusha", Title: "الفصحى"},
	{ID: "egyptian", Title: "اللهجة المصرية"},
	{ID: "saudi", Title: "اللهجة السعودية"},
	{ID: "khaleeji", Title: "اللهجة الخليجية"},
	{ID: "levantine", Title: "اللهجة الشامية"},
	{ID: "sudanese", Title: "اللهجة السودانية"},
	{ID: "yemeni", Title: "اللهجة اليمنية"},
	{ID: "lebanese", Title: "اللهجة اللبنانية"},
}

// Catalog is the static voice pool. Order matters: role assignment hashes
// into the per-dialect slice, so reordering entries reshuffles every
// existing role→voice mapping.
var Catalog = []Profile{
	{ID: "fus_rawi", Name: "جواد", Dialect: "fusha", Gender: Male, VoiceType: "عميق", Category: CategoryNovels, Description: "راوي فصيح بنبرة هادئة تناسب الكتب الصوتية الطويلة"},
	{ID: "fus_doc", Name: "سليم", Dialect: "fusha", Gender: Male, VoiceType: "ناضج", Category: CategoryDoc, Description: "صوت وثائقي رصين بمخارج حروف دقيقة"},
	{ID: "fus_warda", Name: "وردة", Dialect: "fusha", Gender: Female, VoiceType: "دافئة", Category: CategoryNovels, Description: "سرد قصصي دافئ للروايات والقصص القصيرة"},
	{ID: "fus_edu", Name: "أمل", Dialect: "fusha", Gender: Female, VoiceType: "شابة", Category: CategoryEdu, Description: "إلقاء تعليمي واضح ومتزن"},
	{ID: "egy_hassan", Name: "حسن", Dialect: "egyptian", Gender: Male, VoiceType: "شاب", Category: CategoryPodcast, Description: "حوار مصري خفيف الظل يناسب البودكاست"},
	{ID: "egy_nour", Name: "نور", Dialect: "egyptian", Gender: Female, VoiceType: "شابة", Category: CategoryYoutube, Description: "طاقة شبابية لمحتوى يوتيوب والمراجعات"},
	{ID: "egy_fouad", Name: "فؤاد", Dialect: "egyptian", Gender: Male, VoiceType: "عميق", Category: CategoryDrama, Description: "أداء درامي مصري بعمق مسرحي"},
	{ID: "egy_mona", Name: "منى", Dialect: "egyptian", Gender: Female, VoiceType: "ناضجة", Category: CategoryAds, Description: "إعلانات تجارية بإيقاع واثق"},
	{ID: "sau_fahad", Name: "فهد", Dialect: "saudi", Gender: Male, VoiceType: "ناضج", Category: CategoryDoc, Description: "وثائقيات بنبرة سعودية وقورة"},
	{ID: "sau_reem", Name: "ريم", Dialect: "saudi", Gender: Female, VoiceType: "شابة", Category: CategoryPodcast, Description: "حوار بودكاست سعودي قريب ومريح"},
	{ID: "sau_talal", Name: "طلال", Dialect: "saudi", Gender: Male, VoiceType: "شاب", Category: CategoryCorporate, Description: "عروض مؤسسية وتقارير رسمية"},
	{ID: "khj_salem", Name: "سالم", Dialect: "khaleeji", Gender: Male, VoiceType: "ناضج", Category: CategoryNovels, Description: "سرد خليجي أبيض مفهوم في عموم الخليج"},
	{ID: "khj_shaikha", Name: "شيخة", Dialect: "khaleeji", Gender: Female, VoiceType: "دافئة", Category: CategoryDrama, Description: "أداء درامي خليجي هادئ"},
	{ID: "lev_karim", Name: "كريم", Dialect: "levantine", Gender: Male, VoiceType: "شاب", Category: CategoryYoutube, Description: "أسلوب شامي عذب لمحتوى المنصات"},
	{ID: "lev_lina", Name: "لينا", Dialect: "levantine", Gender: Female, VoiceType: "شابة", Category: CategoryCartoon, Description: "شخصيات كرتونية مرحة بلكنة شامية"},
	{ID: "sud_taj", Name: "تاج السر", Dialect: "sudanese", Gender: Male, VoiceType: "عميق", Category: CategoryNovels, Description: "راوي سوداني دافئ الإيقاع"},
	{ID: "sud_awadia", Name: "عوضية", Dialect: "sudanese", Gender: Female, VoiceType: "ناضجة", Category: CategoryEdu, Description: "شرح تعليمي سوداني واضح"},
	{ID: "yem_saleh", Name: "صالح", Dialect: "yemeni", Gender: Male, VoiceType: "ناضج", Category: CategoryDoc, Description: "لهجة يمنية بيضاء مدنية هادئة"},
	{ID: "yem_balqis", Name: "بلقيس", Dialect: "yemeni", Gender: Female, VoiceType: "دافئة", Category: CategoryNovels, Description: "سرد يمني لطيف للقصص"},
	{ID: "leb_elie", Name: "إيلي", Dialect: "lebanese", Gender: Male, VoiceType: "شاب", Category: CategoryAds, Description: "إعلانات أنيقة بلمسة لبنانية"},
	{ID: "leb_yara", Name: "يارا", Dialect: "lebanese", Gender: Female, VoiceType: "شابة", Category: CategoryPodcast, Description: "حوار لبناني راقٍ للبودكاست"},
}

// All returns the full flattened pool in catalog order.
func All() []Profile {
	out := make([]Profile, len(Catalog))
	copy(out, Catalog)
	return out
}

// ForDialect returns the pool for one dialect, or the full catalog when the
// dialect has no profiles of its own.
func ForDialect(dialectID string) []Profile {
	var out []Profile
	for _, p := range Catalog {
		if p.Dialect == dialectID {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return All()
	}
	return out
}

func ByID(id string) (Profile, bool) {
	for _, p := range Catalog {
		if p.ID == id {
			return p, true
		}
	}
	return Profile{}, false
}

func ByName(name string) (Profile, bool) {
	for _, p := range Catalog {
		if p.Name == name {
			return p, true
		}
	}
	return Profile{}, false
}

func DialectTitle(id string) string {
	for _, d := range Dialects {
		if d.ID == id {
			return d.Title
		}
	}
	return Dialects[0].Title
}

// BaseVoiceFor maps a catalog profile onto the concrete provider voice it is
// built on. The provider exposes four Arabic voices; depth and gender decide
// which one carries the profile.
func BaseVoiceFor(p Profile) string {
	switch {
	case p.Gender == Female && (p.VoiceType == "دافئة" || p.VoiceType == "ناضجة"):
		return "ar-XA-Wavenet-D"
	case p.Gender == Female:
		return "ar-XA-Wavenet-A"
	case p.VoiceType == "عميق":
		return "ar-XA-Wavenet-C"
	default:
		return "ar-XA-Wavenet-B"
	}
}

// Fingerprint derives a stable 8-digit identity tag from a voice name. It is
// embedded in performance directives so repeated renders of one profile stay
// recognisably consistent.
func Fingerprint(name string) string {
	var hash int32
	for _, r := range name {
		hash = (hash << 5) - hash + int32(r)
	}
	if hash < 0 {
		hash = -hash
	}
	s := strconv.Itoa(int(hash))
	if len(s) > 8 {
		s = s[:8]
	}
	return s
}

// Validate reports catalog corruption early at startup.
func Validate() error {
	seen := make(map[string]bool, len(Catalog))
	for _, p := range Catalog {
		if p.ID == "" || p.Name == "" {
			return fmt.Errorf("voice profile with empty identity: %+v", p)
		}
		if seen[p.ID] {
			return fmt.Errorf("duplicate voice profile id %q", p.ID)
		}
		seen[p.ID] = true
	}
	return nil
}
