package site

import (
	"strconv"
	"strings"

	"finitefield.org/taniti-web/internal/dataset"
	"finitefield.org/taniti-web/internal/filters"
	"finitefield.org/taniti-web/internal/format"
	"finitefield.org/taniti-web/internal/nav"
	"finitefield.org/taniti-web/internal/seo"
)

const siteName = "Visit Taniti"

// DemoPhone is the reservation line shown on venue pages.
const DemoPhone = "+1 (808) 555‑0123"

var fastFacts = []Fact{
	{Label: "Alcohol", Value: "No service 12:00 a.m.–9:00 a.m."},
	{Label: "Buses", Value: "5 a.m.–11 p.m. (Taniti City)"},
	{Label: "Currency", Value: "USD; many accept euros/yen; cards OK"},
	{Label: "Power", Value: "120V outlets"},
	{Label: "Holidays", Value: "Some closures, so plan ahead"},
	{Label: "Safety", Value: "Violent crime rare; watch for pickpocketing"},
}

// Home renders the landing page.
func Home(st State, _ string) Page {
	return Page{
		Template:    "home",
		Title:       "Welcome to Taniti",
		Subtitle:    "Plan a 5-day island escape with beaches, rainforest walks, and a volcano tour.",
		Description: "Plan your Taniti trip: places to stay, food, things to do and getting around.",
		JSONLD: []map[string]any{
			seo.TouristDestination("Taniti", "A small Pacific island with beaches, rainforest and an active volcano.", ""),
		},
		Data: HomeView{
			Itineraries: itineraryCards(st.Data.Itineraries),
			Facts:       fastFacts,
			Areas: []Card{
				{Title: "Taniti City", Body: "Beaches around Yellow Leaf Bay; native architecture.", Href: "/things", CTA: "Things to do"},
				{Title: "Merriton Landing", Body: "Nightlife & culture: microbrewery, club, galleries, bowling, arcade.", Href: "/things/merriton", CTA: "See activities"},
			},
		},
	}
}

func itineraryCards(list []dataset.Itinerary) []ItineraryCard {
	out := make([]ItineraryCard, 0, len(list))
	for _, it := range list {
		preview := it.Steps
		if len(preview) > 3 {
			preview = preview[:3]
		}
		out = append(out, ItineraryCard{
			ID:      it.ID,
			Name:    firstNonEmpty(it.Name, "Itinerary"),
			Preview: preview,
			Steps:   it.Steps,
			Stops:   format.Plural(len(it.Steps), "stop", "stops"),
		})
	}
	return out
}

// Plan renders the trip planning guide.
func Plan(st State, _ string) Page {
	return article(st, "pages", "plan", nav.Home)
}

// About renders the island overview.
func About(st State, _ string) Page {
	return article(st, "pages", "about", nav.Home)
}

// Area renders neighbourhood pages. Only Merriton Landing exists.
func Area(st State, slug string) Page {
	if slug != "merriton" {
		return NotFound(st, "")
	}
	return article(st, "area", "merriton", nav.Home, nav.Things)
}

// article renders a content page under the given parent crumbs.
func article(st State, kind, slug string, parents ...nav.Crumb) Page {
	if st.Content == nil {
		return NotFound(st, "")
	}
	cp, err := st.Content.Page(kind, slug)
	if err != nil {
		return NotFound(st, "")
	}
	crumbs := append(append([]nav.Crumb{}, parents...), nav.Current(cp.Title))
	return Page{
		Template:    "article",
		Title:       cp.Title,
		Subtitle:    cp.Summary,
		Crumbs:      nav.Trail(crumbs...),
		Description: firstNonEmpty(cp.SEO.Description, cp.Summary),
		Data:        ArticleView{Page: cp},
	}
}

// Things renders the things-to-do index and its category pages.
func Things(st State, slug string) Page {
	switch slug {
	case "":
		return thingsIndex(st)
	case "activity":
		return Activity(st, "")
	case "beaches":
		return article(st, "things", "beaches", nav.Home, nav.Things)
	case "merriton", "merriton-landing":
		return article(st, "things", "merriton", nav.Home, nav.Things)
	}
	return notFoundPage(
		nav.Trail(nav.Home, nav.Things, nav.Current("Not found")),
		"Not found", "That category is not available yet.",
		"Try Beaches or browse all Activities.",
	)
}

func thingsIndex(st State) Page {
	return Page{
		Template:    "things",
		Title:       "Things to Do",
		Subtitle:    "Find ideas for your time on Taniti.",
		Crumbs:      nav.Trail(nav.Home, nav.Current("Things to Do")),
		Description: "Beaches, rainforest walks, the volcano and nightlife on Taniti.",
		Data: ThingsView{
			Clusters: []Card{
				{Title: "Beaches", Body: "Sunbathe, swim, and watch sunsets on our best shores.", Href: "/things/beaches", CTA: "Explore beaches"},
				{Title: "Merriton Landing (Nightlife District)", Body: "Pubs and a microbrewery, a late-night club, small galleries, plus bowling and an arcade, all in one walkable waterfront area.", Href: "/things/merriton", CTA: "Explore Merriton Landing"},
			},
			Featured: st.Data.Featured("volcano", "rainforest", "museum"),
			More:     localLinks(st.Data.OtherActivities),
		},
	}
}

// localLinks rewrites legacy #/ hrefs to server paths.
func localLinks(links []dataset.ActivityLink) []dataset.ActivityLink {
	out := make([]dataset.ActivityLink, 0, len(links))
	for _, l := range links {
		l.Href = LocalHref(l.Href)
		if l.Title == "" {
			l.Title = "Activity"
		}
		out = append(out, l)
	}
	return out
}

// LocalHref converts "#/route/slug" into "/route/slug"; other hrefs pass through.
func LocalHref(href string) string {
	if strings.HasPrefix(href, "#/") {
		return href[1:]
	}
	return href
}

// Stay renders the lodging list or a stay detail page.
func Stay(st State, slug string) Page {
	if slug == "" {
		return Page{
			Template:    "stay_list",
			Title:       "Places to Stay",
			Subtitle:    "From family-owned hotels and B&Bs to a four-star resort.",
			Crumbs:      nav.Trail(nav.Home, nav.Current("Places to Stay")),
			Description: "Hotels, B&Bs and resorts on Taniti, filterable by price and style.",
			Data:        StayList(st),
		}
	}
	s, ok := st.Data.Stay(slug)
	if !ok {
		return NotFound(st, "")
	}
	access := s.Access
	if len(access) == 0 {
		access = []string{"Contact property for details."}
	}
	return Page{
		Template:    "stay_detail",
		Title:       s.Name,
		Subtitle:    format.JoinNonEmpty(" · ", s.Location, s.Best),
		Crumbs:      nav.Trail(nav.Home, nav.Stay, nav.Current(s.Name)),
		Description: firstNonEmpty(s.Overview, s.Name+" in "+s.Location),
		JSONLD: []map[string]any{
			seo.LodgingBusiness(s.Name, s.Overview, "", s.Location, s.Price, s.Amenities),
		},
		Data: StayView{
			Stay:   s,
			Type:   firstNonEmpty(s.Type, "B&B / Hotel"),
			Access: access,
			Tags:   append([]string{s.Price}, s.Tags...),
		},
	}
}

// StayList builds the lodging chips and filtered list.
func StayList(st State) StayListView {
	return StayListView{
		Chips:  chipViews(filters.Lodging, st.Filters.Stay),
		Result: filters.Stays(st.Data.Stays, st.Filters.Stay),
	}
}

// DiningList builds the dining chips and filtered list.
func DiningList(st State) DiningListView {
	res := filters.Venues(st.Data.Dining, st.Filters.Dining)
	items := make([]VenueCard, 0, len(res.Items))
	for _, v := range res.Items {
		items = append(items, venueCard(v))
	}
	return DiningListView{
		Chips:   chipViews(filters.Dining, st.Filters.Dining),
		Items:   items,
		Message: res.Message,
	}
}

func chipViews(kind filters.Kind, sel filters.Selection) []ChipView {
	chips := filters.Chips(kind)
	out := make([]ChipView, 0, len(chips))
	for _, c := range chips {
		out = append(out, ChipView{Kind: kind, Key: c.Key, Label: c.Label, Checked: sel.Has(c.Key)})
	}
	return out
}

func venueCard(v dataset.Venue) VenueCard {
	tags := make([]string, 0, 1+len(v.Cuisines)+len(v.Diet))
	if v.Price != "" {
		tags = append(tags, v.Price)
	}
	for _, c := range v.Cuisines {
		tags = append(tags, filters.CuisineLabel(c))
	}
	for _, d := range v.Diet {
		tags = append(tags, filters.DietLabel(d))
	}
	return VenueCard{Venue: v, Tags: tags}
}

// Dining renders the dining list or a venue detail page.
func Dining(st State, slug string) Page {
	if slug == "" {
		return Page{
			Template:    "dining_list",
			Title:       "Food & Dining",
			Subtitle:    "Ten restaurants across the island; local fish & rice, American-style, and Pan-Asian options.",
			Crumbs:      nav.Trail(nav.Home, nav.Current("Food & Dining")),
			Description: "Restaurants on Taniti, filterable by diet and cuisine.",
			Data:        DiningList(st),
		}
	}
	v, ok := st.Data.Venue(slug)
	if !ok {
		return notFoundPage(
			nav.Trail(nav.Home, nav.Dining, nav.Current("Not found")),
			"Dining place not found", "Try another Food & Dining option.",
			"Use the Food & Dining index to choose an available place.",
		)
	}
	title := firstNonEmpty(v.Name, "Dining")
	cuisine := "local"
	if len(v.Cuisines) > 0 {
		cuisine = strings.ToLower(filters.CuisineLabel(v.Cuisines[0]))
	}
	diet := make([]string, 0, len(v.Diet))
	for _, d := range v.Diet {
		diet = append(diet, filters.DietLabel(d))
	}
	return Page{
		Template:    "dining_detail",
		Title:       title,
		Subtitle:    "Details, hours, and quick reservation options.",
		Crumbs:      nav.Trail(nav.Home, nav.Dining, nav.Current(title)),
		Description: title + " on Taniti: " + cuisine + " dining.",
		JSONLD: []map[string]any{
			seo.Restaurant(title, "", v.Area, v.Price, v.Cuisines),
		},
		Data: VenueView{
			VenueCard: venueCard(v),
			Cuisine:   cuisine,
			Diet:      diet,
			Price:     firstNonEmpty(v.Price, "$$"),
			Phone:     DemoPhone,
			Tel:       "+18085550123",
		},
	}
}

// TransportOptions lists the getting-around choices in display order.
var TransportOptions = []TransportOption{
	{Slug: "bus", Title: "City Buses", Description: "Affordable routes between the airport, Taniti City, and main districts (5 a.m.–11 p.m.)."},
	{Slug: "taxi", Title: "Taxis", Description: "Available day and night in the city; handy after bus hours or for direct rides."},
	{Slug: "rental", Title: "Rental Cars", Description: "Best for exploring beyond the city and visiting remote beaches or viewpoints."},
	{Slug: "bike", Title: "Bicycles", Description: "Flat seaside paths and short hops around town; several rental shops."},
	{Slug: "walk", Title: "Walking", Description: "Walkable districts with waterfront promenades and shaded streets."},
}

// Transport renders the getting-around index or one option.
func Transport(st State, slug string) Page {
	if slug == "" {
		return Page{
			Template:    "transport",
			Title:       "Getting Around",
			Subtitle:    "Find the best way to travel across Taniti.",
			Crumbs:      nav.Trail(nav.Home, nav.Current("Getting Around")),
			Description: "Buses, taxis, rental cars, bikes and walking on Taniti.",
			Data:        TransportView{Options: TransportOptions},
		}
	}
	for _, opt := range TransportOptions {
		if opt.Slug == slug {
			p := article(st, "transport", slug, nav.Home, nav.Transport)
			if !p.NotFound {
				return p
			}
		}
	}
	return notFoundPage(
		nav.Trail(nav.Home, nav.Transport, nav.Current("Not found")),
		"Not found", "That transport option is not available yet.",
		"Try Buses, Taxis, Rental Cars, Bicycles, or Walking.",
	)
}

// FAQs renders the FAQ accordion.
func FAQs(st State, _ string) Page {
	items := make([]FAQItem, 0, len(st.Data.FAQs))
	schema := make([]seo.FAQ, 0, len(st.Data.FAQs))
	for i, f := range st.Data.FAQs {
		item := FAQItem{
			ID: "faq-" + strconv.Itoa(i),
			Q:  firstNonEmpty(f.Q, "Question"),
			A:  firstNonEmpty(f.A, "Answer"),
		}
		items = append(items, item)
		schema = append(schema, seo.FAQ{Question: item.Q, Answer: item.A})
	}
	return Page{
		Template:    "faqs",
		Title:       "Frequently Asked Questions",
		Subtitle:    "Quick answers to common questions.",
		Crumbs:      nav.Trail(nav.Home, nav.Current("FAQs")),
		Description: "Answers about money, transport, safety and rules on Taniti.",
		JSONLD:      []map[string]any{seo.FAQPage(schema)},
		Data:        FAQView{Items: items},
	}
}

// TourismOffice is the contact card shown on the contact page.
var TourismOffice = Office{
	Name:    "Taniti Tourism Board",
	Address: []string{"Harborfront District, 22 Coral Way", "Taniti City, 96960"},
	Phone:   "+1 (808) 555‑0149",
	Email:   "hello@visit-taniti.example",
	Hours:   "Mon–Fri 9:00–17:00 (TST)",
	Support: "+1 (808) 555‑0199 (24/7)",
	Press:   "press@visit-taniti.example",
	Social:  "@VisitTaniti",
}

// Contact renders the contact page.
func Contact(_ State, _ string) Page {
	return Page{
		Template:    "contact",
		Title:       "Contact Taniti Tourism",
		Subtitle:    "We're here to help plan your trip.",
		Crumbs:      nav.Trail(nav.Home, nav.Current("Contact")),
		Description: "Contact the Taniti Tourism Board.",
		JSONLD: []map[string]any{
			seo.Organization(TourismOffice.Name, "", TourismOffice.Email, TourismOffice.Phone),
		},
		Data: ContactView{Office: TourismOffice},
	}
}

// Itinerary renders the itinerary index or one itinerary.
func Itinerary(st State, slug string) Page {
	if slug == "" {
		return Page{
			Template:    "itinerary_index",
			Title:       "Quick Itineraries",
			Subtitle:    "Jump-start your trip with ready-made mini plans.",
			Crumbs:      nav.Trail(nav.Home, nav.Current("Quick Itineraries")),
			Description: "Ready-made Taniti itineraries.",
			Data:        ItineraryIndexView{Items: itineraryCards(st.Data.Itineraries)},
		}
	}
	it, ok := st.Data.Itinerary(slug)
	if !ok {
		return notFoundPage(
			nav.Trail(nav.Home, nav.Itineraries, nav.Current("Not found")),
			"Itinerary not found", "Try another quick itinerary.",
			"Use the Quick Itineraries index to choose an available plan.",
		)
	}
	name := firstNonEmpty(it.Name, "Itinerary")
	it.Name = name
	days := make([]Day, 0, len(it.Steps))
	for i, s := range it.Steps {
		days = append(days, Day{Number: i + 1, Text: s, Href: StepLink(s)})
	}
	return Page{
		Template:    "itinerary",
		Title:       name,
		Subtitle:    "A compact plan you can follow at your own pace.",
		Crumbs:      nav.Trail(nav.Home, nav.Itineraries, nav.Current(name)),
		Description: name + ": " + format.Plural(len(it.Steps), "stop", "stops") + " on Taniti.",
		JSONLD:      []map[string]any{seo.TouristTrip(name, "", it.Steps)},
		Data:        ItineraryView{Itinerary: it, Days: days},
	}
}

// Activity renders the activity index, a dataset activity, or a generic page
// for activities listed without a detail record.
func Activity(st State, slug string) Page {
	if slug == "" {
		featured := make([]dataset.SlugActivity, 0, len(st.Data.Activities))
		for _, s := range st.Data.ActivitySlugs() {
			featured = append(featured, dataset.SlugActivity{Slug: s, Activity: st.Data.Activities[s]})
		}
		return Page{
			Template:    "activity_index",
			Title:       "Activities",
			Subtitle:    "Everything to see and do on Taniti.",
			Crumbs:      nav.Trail(nav.Home, nav.Things, nav.Current("Activities")),
			Description: "All activities on Taniti.",
			Data:        ActivityIndexView{Activities: featured, More: localLinks(st.Data.OtherActivities)},
		}
	}
	if a, ok := st.Data.Activity(slug); ok {
		title := firstNonEmpty(a.Title, format.HumanizeSlug(slug), "Activity")
		actions := make([]dataset.Action, len(a.Actions))
		for i, act := range a.Actions {
			act.Href = LocalHref(act.Href)
			actions[i] = act
		}
		a.Actions = actions
		return Page{
			Template:    "activity",
			Title:       title,
			Subtitle:    format.JoinNonEmpty(" · ", a.Type, a.Best),
			Crumbs:      nav.Trail(nav.Home, nav.Things, nav.Current(title)),
			Description: firstNonEmpty(a.Overview, title+" on Taniti."),
			JSONLD:      []map[string]any{seo.TouristAttraction(title, a.Overview, "")},
			Data:        ActivityView{Slug: slug, Activity: a},
		}
	}
	if _, ok := st.Data.CatalogedActivity(slug); ok {
		title := firstNonEmpty(format.HumanizeSlug(slug), "Activity")
		return Page{
			Template:    "activity_generic",
			Title:       title,
			Subtitle:    "Plan your " + strings.ToLower(title) + " on Taniti.",
			Crumbs:      nav.Trail(nav.Home, nav.Things, nav.Current(title)),
			Description: title + " on Taniti.",
			Data:        GenericActivityView{Title: title, Lower: strings.ToLower(title)},
		}
	}
	return NotFound(st, "")
}

// NotFound is the generic missing-page result.
func NotFound(_ State, hint string) Page {
	return notFoundPage(
		nav.Trail(nav.Home, nav.Current("Not found")),
		"Page not found", "The page you requested does not exist.",
		firstNonEmpty(hint, "Use the navigation to find available pages."),
	)
}

func notFoundPage(crumbs []nav.Crumb, title, subtitle, hint string) Page {
	return Page{
		Template: "not_found",
		Title:    title,
		Subtitle: subtitle,
		Crumbs:   crumbs,
		NotFound: true,
		Data:     NotFoundView{Hint: hint},
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
