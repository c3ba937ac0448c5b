package resolve

import "mediashelf/internal/media"

// Label synonyms, tried in order.
var (
	publishDateLabels = []string{"出版年", "出版年份", "出版时间", "出版日期"}
	performerLabels   = []string{"表演者", "艺术家", "歌手", "演唱者", "演奏者"}
)

const castLimit = 5

var userState = fromText("#interest_sect_level span.mr10")

var bookRules = []FieldRule{
	{Key: media.FieldTitle, Shape: ShapeScalar, Cascade: Cascade{
		fromData("name"),
		fromText(`h1 span[property="v:itemreviewed"]`),
		fromText("h1"),
	}},
	{Key: media.FieldAuthor, Shape: ShapeList, Cascade: Cascade{
		fromNames("author", 0),
		fromLabelLinks("作者"),
		fromLabelText("作者"),
	}},
	{Key: media.FieldTranslator, Shape: ShapeList, Cascade: Cascade{
		fromLabelLinks("译者"),
		fromLabelText("译者"),
	}},
	{Key: media.FieldPublisher, Shape: ShapeScalar, Cascade: Cascade{
		fromNames("publisher", 1),
		fromLabel("出版社"),
	}},
	{Key: media.FieldSeries, Shape: ShapeScalar, Cascade: Cascade{fromLabel("丛书")}},
	{Key: media.FieldISBN, Shape: ShapeScalar, Cascade: Cascade{
		fromData("isbn"),
		fromLabel("ISBN"),
	}},
	{Key: media.FieldPrice, Shape: ShapeScalar, Cascade: Cascade{fromLabel("定价")}},
	{Key: media.FieldPageCount, Shape: ShapeScalar, Cascade: Cascade{
		fromData("numberOfPages"),
		fromLabel("页数"),
	}},
	{Key: media.FieldPublishDate, Shape: ShapeScalar, Cascade: append(Cascade{
		fromData("datePublished"),
	}, fromLabels(publishDateLabels...)...)},
	{Key: media.FieldDescription, Shape: ShapeText, Cascade: Cascade{
		fromData("description"),
		fromBlock("#link-report span.all .intro"),
		fromBlock("#link-report .intro"),
		fromBlock("div.intro"),
	}},
	{Key: media.FieldCoverURL, Shape: ShapeURL, Cascade: Cascade{
		fromData("image"),
		fromAttr("a.nbg", "href"),
		fromAttr("#mainpic img", "src"),
	}},
	{Key: media.FieldScore, Shape: ShapeScalar, Cascade: Cascade{
		fromData("aggregateRating", "ratingValue"),
		fromText("strong.rating_num"),
	}},
	{Key: media.FieldTags, Shape: ShapeTags, Cascade: Cascade{
		fromAll("#db-tags-section a.tag", 0),
		fromAll("a.tag", 0),
	}},
	{Key: media.FieldStatus, Shape: ShapeScalar, Cascade: Cascade{
		mapped(userState, bookState),
	}},
}

var movieRules = []FieldRule{
	{Key: media.FieldTitle, Shape: ShapeScalar, Cascade: Cascade{
		fromData("name"),
		fromText(`h1 span[property="v:itemreviewed"]`),
		fromText("h1"),
	}},
	{Key: media.FieldOriginalTitle, Shape: ShapeScalar, Cascade: Cascade{
		mapped(fromText(`span[property="v:itemreviewed"]`), secondWord),
	}},
	{Key: media.FieldDirector, Shape: ShapeList, Cascade: Cascade{
		fromNames("director", 0),
		fromAll(`a[rel="v:directedBy"]`, 0),
	}},
	{Key: media.FieldCast, Shape: ShapeList, Cascade: Cascade{
		fromNames("actor", castLimit),
		fromAll(`a[rel="v:starring"]`, castLimit),
	}},
	{Key: media.FieldGenre, Shape: ShapeTags, Cascade: Cascade{
		fromData("genre"),
		fromAll(`span[property="v:genre"]`, 0),
	}},
	{Key: media.FieldYear, Shape: ShapeScalar, Cascade: Cascade{
		year(fromData("datePublished")),
		year(fromText(`span[property="v:initialReleaseDate"]`)),
		year(fromText("h1 span.year")),
	}},
	{Key: media.FieldCountry, Shape: ShapeList, Cascade: Cascade{fromLabel("制片国家/地区")}},
	{Key: media.FieldLanguage, Shape: ShapeList, Cascade: Cascade{fromLabel("语言")}},
	{Key: media.FieldDuration, Shape: ShapeScalar, Cascade: Cascade{
		mapped(fromData("duration"), minutesFromISO),
		fromText(`span[property="v:runtime"]`),
		fromLabel("片长"),
	}},
	{Key: media.FieldIMDbID, Shape: ShapeScalar, Cascade: Cascade{fromLabel("IMDb")}},
	{Key: media.FieldDescription, Shape: ShapeText, Cascade: Cascade{
		fromData("description"),
		fromBlock(`span[property="v:summary"]`),
	}},
	{Key: media.FieldCoverURL, Shape: ShapeURL, Cascade: Cascade{
		fromData("image"),
		fromAttr(`img[rel="v:image"]`, "src"),
		fromAttr("#mainpic img", "src"),
	}},
	{Key: media.FieldScore, Shape: ShapeScalar, Cascade: Cascade{
		fromData("aggregateRating", "ratingValue"),
		fromText(`strong[property="v:average"]`),
	}},
	{Key: media.FieldTags, Shape: ShapeTags, Cascade: Cascade{
		combine("genre+tags",
			fromData("genre"),
			fromAll(`span[property="v:genre"]`, 0),
			fromAll("div.tags-body a", 0),
		),
	}},
	{Key: media.FieldStatus, Shape: ShapeScalar, Cascade: Cascade{userState}},
}

var musicTitle = Cascade{
	fromData("name"),
	fromText("h1 span"),
	fromText("h1"),
}

var musicRules = []FieldRule{
	{Key: media.FieldTitle, Shape: ShapeScalar, Cascade: musicTitle},
	{Key: media.FieldAlbum, Shape: ShapeScalar, Cascade: musicTitle},
	{Key: media.FieldArtist, Shape: ShapeList, Cascade: musicArtist()},
	{Key: media.FieldGenre, Shape: ShapeTags, Cascade: Cascade{
		fromData("genre"),
		fromLabel("流派"),
	}},
	{Key: media.FieldPublisher, Shape: ShapeScalar, Cascade: Cascade{fromLabel("出版者")}},
	{Key: media.FieldMedium, Shape: ShapeScalar, Cascade: Cascade{fromLabel("介质")}},
	{Key: media.FieldYear, Shape: ShapeScalar, Cascade: Cascade{
		year(fromData("datePublished")),
		year(fromLabel("发行时间")),
	}},
	{Key: media.FieldTracks, Shape: ShapeLines, Cascade: Cascade{
		fromLines("div.track-list li"),
		fromLines(".track-list .track-item"),
		fromBlock("div.track-list"),
	}},
	{Key: media.FieldDescription, Shape: ShapeText, Cascade: Cascade{
		fromData("description"),
		fromBlock("span.all.hidden"),
		fromBlock(`span[property="v:summary"]`),
	}},
	{Key: media.FieldCoverURL, Shape: ShapeURL, Cascade: Cascade{
		fromData("image"),
		fromAttr("a.nbg", "href"),
		fromAttr("#mainpic img", "src"),
	}},
	{Key: media.FieldScore, Shape: ShapeScalar, Cascade: Cascade{
		fromData("aggregateRating", "ratingValue"),
		fromText("strong.rating_num"),
	}},
	{Key: media.FieldTags, Shape: ShapeTags, Cascade: Cascade{
		fromAll("#db-tags-section a.tag", 0),
		fromAll("a.tag", 0),
		fromLabel("流派"),
	}},
	{Key: media.FieldStatus, Shape: ShapeScalar, Cascade: Cascade{userState}},
}

// musicArtist lists the page sources for the performer. Gaps left here are
// handled by the ambiguity resolver.
func musicArtist() Cascade {
	cascade := Cascade{fromNames("byArtist", 0)}
	for _, label := range performerLabels {
		cascade = append(cascade, fromLabelLinks(label))
	}
	for _, label := range performerLabels {
		cascade = append(cascade, fromLabelText(label))
	}
	return append(cascade,
		fromAll("div.song-singers a", 0),
		fromText(`a[href*="/musician/"]`),
		fromAttr(`meta[name="music:musician"]`, "content"),
		mapped(fromAttr("a[data-desc]", "data-desc"), firstSlashPart),
	)
}
