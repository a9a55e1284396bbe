// Package testutil holds OrthoXML fixtures shared by package tests.
package testutil

// Vertebrates has three taxonomy levels, two rootHOGs, a nested paralog
// group and one gene without protId.
const Vertebrates = `<?xml version="1.0" encoding="UTF-8"?>
<orthoXML xmlns="http://orthoXML.org/2011/" version="0.5" origin="fixture" originVersion="1">
  <species name="HUMAN" NCBITaxId="9606">
    <database name="testdb" version="1">
      <genes>
        <gene id="1" protId="HUMAN1" geneId="gH1"/>
        <gene id="2" protId="HUMAN2"/>
      </genes>
    </database>
  </species>
  <species name="MOUSE" NCBITaxId="10090">
    <database name="testdb" version="1">
      <genes>
        <gene id="3" protId="MOUSE1"/>
        <gene id="4" protId="MOUSE2"/>
      </genes>
    </database>
  </species>
  <species name="FISH" NCBITaxId="7955">
    <database name="testdb" version="1">
      <genes>
        <gene id="5" protId="FISH1"/>
        <gene id="6"/>
      </genes>
    </database>
  </species>
  <taxonomy>
    <taxon id="100" name="Vertebrata">
      <taxon id="101" name="Mammalia">
        <taxon id="9606" name="HUMAN"/>
        <taxon id="10090" name="MOUSE"/>
      </taxon>
      <taxon id="7955" name="FISH"/>
    </taxon>
  </taxonomy>
  <scores>
    <scoreDef id="CompletenessScore" desc="fraction of expected species"/>
  </scores>
  <groups>
    <orthologGroup id="H1" taxonId="100">
      <score id="CompletenessScore" value="0.9"/>
      <property name="TaxRange" value="Vertebrata"/>
      <orthologGroup id="H1.1" taxonId="101">
        <score id="CompletenessScore" value="0.4"/>
        <geneRef id="1"/>
        <paralogGroup>
          <geneRef id="3"/>
          <geneRef id="4"/>
        </paralogGroup>
      </orthologGroup>
      <geneRef id="5"/>
    </orthologGroup>
    <orthologGroup id="H2">
      <score id="CompletenessScore" value="0.3"/>
      <geneRef id="2"/>
      <geneRef id="6"/>
    </orthologGroup>
  </groups>
</orthoXML>
`

// TwoRoots: H1 carries the score, H2 is unscored.
const TwoRoots = `<?xml version="1.0" encoding="UTF-8"?>
<orthoXML xmlns="http://orthoXML.org/2011/" version="0.5">
  <species name="speciesA" NCBITaxId="1">
    <database name="db" version="1">
      <genes>
        <gene id="g1" protId="A1"/>
        <gene id="g3" protId="A3"/>
      </genes>
    </database>
  </species>
  <species name="speciesB" NCBITaxId="2">
    <database name="db" version="1">
      <genes>
        <gene id="g2" protId="B2"/>
      </genes>
    </database>
  </species>
  <taxonomy>
    <taxon id="0" name="root">
      <taxon id="1" name="speciesA"/>
      <taxon id="2" name="speciesB"/>
    </taxon>
  </taxonomy>
  <groups>
    <orthologGroup id="H1">
      <score id="CompletenessScore" value="0.5"/>
      <geneRef id="g1"/>
      <geneRef id="g2"/>
    </orthologGroup>
    <orthologGroup id="H2">
      <geneRef id="g3"/>
    </orthologGroup>
  </groups>
</orthoXML>
`

// DeepClade: the root and middle groups fail a 0.5 threshold, the deepest passes.
const DeepClade = `<?xml version="1.0" encoding="UTF-8"?>
<orthoXML xmlns="http://orthoXML.org/2011/" version="0.5">
  <species name="A" NCBITaxId="1">
    <database name="db" version="1">
      <genes>
        <gene id="a1" protId="A1"/>
        <gene id="a2" protId="A2"/>
        <gene id="a3" protId="A3"/>
      </genes>
    </database>
  </species>
  <species name="B" NCBITaxId="2">
    <database name="db" version="1">
      <genes>
        <gene id="b1" protId="B1"/>
        <gene id="b2" protId="B2"/>
      </genes>
    </database>
  </species>
  <taxonomy>
    <taxon id="0" name="AB">
      <taxon id="1" name="A"/>
      <taxon id="2" name="B"/>
    </taxon>
  </taxonomy>
  <groups>
    <orthologGroup id="R">
      <score id="CompletenessScore" value="0.2"/>
      <geneRef id="a3"/>
      <orthologGroup id="M">
        <score id="CompletenessScore" value="0.3"/>
        <geneRef id="b2"/>
        <orthologGroup id="D">
          <score id="CompletenessScore" value="0.9"/>
          <geneRef id="a1"/>
          <geneRef id="b1"/>
        </orthologGroup>
      </orthologGroup>
      <orthologGroup id="U">
        <geneRef id="a2"/>
      </orthologGroup>
    </orthologGroup>
  </groups>
</orthoXML>
`

// BadScore has one non-numeric score value.
const BadScore = `<?xml version="1.0" encoding="UTF-8"?>
<orthoXML xmlns="http://orthoXML.org/2011/" version="0.5">
  <species name="A" NCBITaxId="1">
    <database name="db" version="1">
      <genes>
        <gene id="1"/>
        <gene id="2"/>
      </genes>
    </database>
  </species>
  <taxonomy>
    <taxon id="1" name="A"/>
  </taxonomy>
  <groups>
    <orthologGroup id="G">
      <score id="CompletenessScore" value="n/a"/>
      <score id="Other" value="2.5"/>
      <geneRef id="1"/>
      <geneRef id="2"/>
    </orthologGroup>
  </groups>
</orthoXML>
`
