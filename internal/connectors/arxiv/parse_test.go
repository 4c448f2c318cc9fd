package arxiv

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleFeed = `<?xml version="1.0" encoding="UTF-8"?>
<feed xmlns="http://www.w3.org/2005/Atom">
  <entry>
    <id>http://arxiv.org/abs/2301.12345v1</id>
    <title>Understanding  Autophagy
      in Neurodegenerative Diseases</title>
    <published>2023-01-15T10:30:00Z</published>
    <summary>Autophagy is a lysosomal   degradation pathway
      essential for cellular homeostasis.</summary>
    <author><name>John Doe</name></author>
    <author><name>Jane Smith</name></author>
    <category term="q-bio.CB"/>
    <category term="q-bio.NC"/>
  </entry>
  <entry>
    <id>http://arxiv.org/abs/2302.67890v2</id>
    <title>Cell Death Pathways</title>
    <published>2023-02-20T08:00:00Z</published>
    <summary>Programmed cell death involves multiple pathways.</summary>
    <author><name>A. Researcher</name></author>
    <category term="q-bio.TO"/>
  </entry>
</feed>`

const feedWithBadEntry = `<?xml version="1.0" encoding="UTF-8"?>
<feed xmlns="http://www.w3.org/2005/Atom">
  <entry>
    <id>http://arxiv.org/abs/2301.00001v1</id>
    <title>Valid Paper</title>
    <published>2023-01-01T00:00:00Z</published>
    <summary>A valid abstract.</summary>
    <author><name>Valid Author</name></author>
    <category term="q-bio.TO"/>
  </entry>
  <entry>
    <id>http://arxiv.org/abs/2301.00002v1</id>
    <title>No Authors Here</title>
    <published>2023-01-02T00:00:00Z</published>
    <summary>An abstract without authors.</summary>
    <category term="q-bio.TO"/>
  </entry>
  <entry>
    <id>http://arxiv.org/abs/2301.00003v1</id>
    <title>Bad Date</title>
    <published>yesterday</published>
    <summary>An abstract with an unparseable date.</summary>
    <author><name>Someone</name></author>
    <category term="q-bio.TO"/>
  </entry>
</feed>`

func TestParseFeed(t *testing.T) {
	papers, err := parseFeed([]byte(sampleFeed))
	require.NoError(t, err)
	require.Len(t, papers, 2)

	first := papers[0]
	assert.Equal(t, "2301.12345v1", first.ArxivID)
	assert.Equal(t, "Understanding Autophagy in Neurodegenerative Diseases", first.Title)
	assert.Equal(t, []string{"John Doe", "Jane Smith"}, first.Authors)
	assert.Equal(t, []string{"q-bio.CB", "q-bio.NC"}, first.Categories)
	assert.Equal(t, time.Date(2023, 1, 15, 10, 30, 0, 0, time.UTC), first.Published)
	assert.Equal(t, "Autophagy is a lysosomal degradation pathway essential for cellular homeostasis.", first.Abstract)

	assert.Equal(t, "2302.67890v2", papers[1].ArxivID)
}

func TestParseFeed_SkipsMalformedEntries(t *testing.T) {
	papers, err := parseFeed([]byte(feedWithBadEntry))
	require.NoError(t, err, "bad entries must not fail the batch")

	require.Len(t, papers, 1)
	assert.Equal(t, "2301.00001v1", papers[0].ArxivID)
}

func TestParseFeed_EmptyFeed(t *testing.T) {
	papers, err := parseFeed([]byte(`<?xml version="1.0"?><feed xmlns="http://www.w3.org/2005/Atom"></feed>`))
	require.NoError(t, err)
	assert.Empty(t, papers)
}

func TestParseFeed_MalformedXML(t *testing.T) {
	_, err := parseFeed([]byte(`not xml at all`))
	assert.Error(t, err)
}
